package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// memoryPath is the sqlite3 DSN for a private in-memory database.
const memoryPath = ":memory:"

// pragma is a connection setting and the value SQLite reports back once it
// is in effect.
type pragma struct {
	name string
	set  string
	want string
}

var pragmas = []pragma{
	{"journal_mode", "WAL", "wal"},
	{"synchronous", "NORMAL", "1"},
	{"busy_timeout", "5000", "5000"},
	{"foreign_keys", "ON", "1"},
}

// migration upgrades the schema by one user_version.
type migration struct {
	name string
	stmt string
}

// migrations[i] moves the schema from version i to i+1.
var migrations = []migration{
	{
		name: "index queries by definition hash",
		stmt: `CREATE INDEX IF NOT EXISTS idx_queries_definition ON queries(definition_hash, seq)`,
	},
}

// currentSchemaVersion is the user_version of a fully migrated run log.
var currentSchemaVersion = len(migrations)

// Store is the durable run log.
type Store struct {
	db *sql.DB
}

// Open opens the run log at path, creating it if needed. ":memory:" gives a
// private in-memory log. Pragmas are applied and read back, and pending
// migrations run, before the store is returned. Reopening an existing log
// is safe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection: SQLite has a single writer, and an in-memory database
	// exists only on the connection that created it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.init(path == memoryPath); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(inMemory bool) error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.set)); err != nil {
			return fmt.Errorf("failed to set %s: %w", p.name, err)
		}
		want := p.want
		if inMemory && p.name == "journal_mode" {
			want = "memory"
		}
		if err := s.verifyPragma(p.name, want); err != nil {
			return err
		}
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return s.migrate()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate applies every migration past the stored user_version, each in its
// own transaction together with the version bump.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		m := migrations[v]
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
		if _, err := tx.Exec(m.stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d (%s): %w", v+1, m.name, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: set user_version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
	}
	return nil
}

// verifyPragma reads a pragma back and compares it, case-insensitively, to
// the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if !strings.EqualFold(value, expected) {
		return fmt.Errorf("pragma %s = %q, expected %q", name, value, expected)
	}
	return nil
}
