// Package storage defines the persistence contracts for simulated games.
//
// A journal keeps one record per game, the ordered steps every turn took, and
// the final standings. Implementations (e.g., SQLite) live in subpackages.
//
// Common error types:
//   - ErrNotFound: requested record is missing
//   - ErrAlreadyExists: a game id was reused
package storage
