package ir

// Version constants recorded with every harness run.
const (
	// IRVersion is the definition schema version.
	IRVersion = "1"

	// ToolVersion is the facore tool version.
	ToolVersion = "0.1.0"
)
