// Package sqlite implements the game journal on SQLite (modernc.org/sqlite).
//
// Schema history lives in embedded migrations applied on Open, so a journal
// file can be reopened by any later build.
package sqlite
