package symbol

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigits_ZeroIsEmpty(t *testing.T) {
	for _, base := range []uint32{2, 3, 10} {
		assert.Empty(t, slices.Collect(Digits(0, base)), "base %d", base)
	}
}

func TestDigits_LeastSignificantFirst(t *testing.T) {
	tests := []struct {
		value uint64
		base  uint32
		want  []Symbol
	}{
		{1, 2, []Symbol{1}},
		{2, 2, []Symbol{0, 1}},
		{4, 2, []Symbol{0, 0, 1}},
		{5, 2, []Symbol{1, 0, 1}},
		{6, 2, []Symbol{0, 1, 1}},
		{5, 3, []Symbol{2, 1}},
		{1234, 10, []Symbol{4, 3, 2, 1}},
		{255, 16, []Symbol{15, 15}},
	}

	for _, tt := range tests {
		got := slices.Collect(Digits(tt.value, tt.base))
		assert.Equal(t, tt.want, got, "Digits(%d, %d)", tt.value, tt.base)
	}
}

func TestDigits_Restartable(t *testing.T) {
	seq := Digits(11, 2)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, []Symbol{1, 1, 0, 1}, first)
	assert.Equal(t, first, second)
}

func TestDigits_EarlyBreak(t *testing.T) {
	var got []Symbol
	for d := range Digits(1234, 10) {
		got = append(got, d)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []Symbol{4, 3}, got)
}

func TestDigits_PanicsOnSmallBase(t *testing.T) {
	assert.Panics(t, func() { Digits(5, 1) })
	assert.Panics(t, func() { Digits(5, 0) })
}

func TestCompose_RoundTrip(t *testing.T) {
	values := []uint64{1, 2, 3, 7, 8, 100, 1 << 20, 987654321, math.MaxUint32, math.MaxUint64}

	for _, base := range []uint32{2, 3, 7, 10, 16, 256} {
		for _, v := range values {
			assert.Equal(t, v, Compose(Digits(v, base), base), "value %d base %d", v, base)
		}
	}
}

func TestCompose_Empty(t *testing.T) {
	assert.Equal(t, uint64(0), Compose(Word(), 2))
}

func TestWord(t *testing.T) {
	assert.Equal(t, []Symbol{1, 0, 1}, slices.Collect(Word(1, 0, 1)))
	assert.Empty(t, slices.Collect(Word()))
}

func TestParseWord(t *testing.T) {
	word, err := ParseWord("1, 0,1")
	require.NoError(t, err)
	assert.Equal(t, []Symbol{1, 0, 1}, word)

	word, err = ParseWord("  ")
	require.NoError(t, err)
	assert.Empty(t, word)

	_, err = ParseWord("1,x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol 1")

	_, err = ParseWord("-1")
	require.Error(t, err)
}

func TestFormatWord(t *testing.T) {
	assert.Equal(t, "1,0,2", FormatWord([]Symbol{1, 0, 2}))
	assert.Equal(t, "", FormatWord(nil))

	word, err := ParseWord(FormatWord([]Symbol{3, 1, 4}))
	require.NoError(t, err)
	assert.Equal(t, []Symbol{3, 1, 4}, word)
}
