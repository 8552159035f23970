package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrAlreadyExists indicates a game id is already journaled.
var ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "record already exists")

// GameStatus is the lifecycle of a journaled game.
type GameStatus string

const (
	GameRunning  GameStatus = "running"
	GameFinished GameStatus = "finished"
	// GameHalted marks a game stopped by an engine failure.
	GameHalted GameStatus = "halted"
)

// GameRecord describes one simulated game.
type GameRecord struct {
	ID        string
	Board     string
	Seed      int64
	Players   []string
	Status    GameStatus
	Winner    string
	Turns     int
	StartedAt time.Time
	EndedAt   *time.Time
}

// StepRecord is one engine step as it happened.
type StepRecord struct {
	GameID   string
	Seq      int64
	Turn     int
	Step     int
	Player   string
	Card     string
	Action   string
	Decision string
	Executed bool
	Requeued bool
	Balance  int
	// Hash links the step to the previous step of the same game.
	Hash string
}

// StandingRecord is a player's final place in a game.
type StandingRecord struct {
	GameID     string
	Rank       int
	Player     string
	Status     string
	Balance    int
	Properties int
}

// GameStore persists game headers.
type GameStore interface {
	CreateGame(ctx context.Context, game GameRecord) error
	// FinishGame stores the final status, winner, turn count and end time.
	FinishGame(ctx context.Context, game GameRecord) error
	GetGame(ctx context.Context, id string) (GameRecord, error)
	ListGames(ctx context.Context, limit int) ([]GameRecord, error)
}

// StepStore persists the ordered steps of a game.
type StepStore interface {
	// AppendSteps assigns sequence numbers and chain hashes and stores steps
	// after any already journaled for their game.
	AppendSteps(ctx context.Context, gameID string, steps []StepRecord) error
	ListSteps(ctx context.Context, gameID string) ([]StepRecord, error)
	// VerifySteps recomputes the chain and fails at the first altered step.
	VerifySteps(ctx context.Context, gameID string) error
}

// StandingStore persists final standings.
type StandingStore interface {
	SaveStandings(ctx context.Context, gameID string, standings []StandingRecord) error
	ListStandings(ctx context.Context, gameID string) ([]StandingRecord, error)
}

// Journal is everything a session records.
type Journal interface {
	GameStore
	StepStore
	StandingStore
}
