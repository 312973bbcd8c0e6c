// Package store provides the SQLite-backed run log of the conformance
// harness.
//
// The store is an append-only log with:
//   - Runs: one record per scenario run, with a final status
//   - Queries: one record per membership query, with its outcome
//
// Automata and definitions are never stored; a query only carries the
// content hash of the definition it ran against.
//
// # Ordering
//
// All ordering uses seq INTEGER (logical clock), never timestamps. Every
// list query includes ORDER BY seq ASC, id ASC COLLATE BINARY so results
// are identical across runs.
//
// # Database Configuration
//
// Open sets and then reads back each pragma; a log that does not take a
// setting fails to open. The in-memory log (":memory:") reports journal
// mode "memory" instead of WAL.
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Query ids are computed by ir.QueryID from RFC 8785 canonical JSON and
// SHA-256 with domain separation.
package store
