// Package player models seats at the table: identity, board position and
// standing in the game.
package player

import (
	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
)

// ID identifies a player for the lifetime of a game.
type ID string

// Status is a player's standing in the game.
type Status int

const (
	StatusInGame Status = iota + 1
	StatusInJail
	StatusBankrupt
)

// Final reports whether the player has left the game for good.
func (s Status) Final() bool {
	return s == StatusBankrupt
}

func (s Status) String() string {
	switch s {
	case StatusInGame:
		return "in_game"
	case StatusInJail:
		return "in_jail"
	case StatusBankrupt:
		return "bankrupt"
	default:
		return "unknown"
	}
}

var (
	// ErrUnknownPlayer indicates an id with no seat.
	ErrUnknownPlayer = apperrors.New(apperrors.CodeUnknownPlayer, "unknown player")
	// ErrDuplicatePlayer indicates a seat id was registered twice.
	ErrDuplicatePlayer = apperrors.New(apperrors.CodeDuplicatePlayer, "duplicate player")
)

func unknown(id ID) error {
	return apperrors.Derive(ErrUnknownPlayer, map[string]string{"player": string(id)})
}
