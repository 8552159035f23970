package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/services/game/storage"
)

const playersSeparator = ","

const selectGame = `SELECT id, board, seed, players, status, winner, turns, started_at, ended_at FROM games`

// CreateGame stores a new game header.
func (s *Store) CreateGame(ctx context.Context, game storage.GameRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(game.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	status := game.Status
	if status == "" {
		status = storage.GameRunning
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (id, board, seed, players, status, winner, turns, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID, game.Board, game.Seed, strings.Join(game.Players, playersSeparator), string(status),
		game.Winner, game.Turns, toMillis(game.StartedAt), toNullMillis(game.EndedAt),
	)
	if isConstraintError(err) {
		return apperrors.Derive(storage.ErrAlreadyExists, map[string]string{"game": game.ID})
	}
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// FinishGame stores the outcome of a game.
func (s *Store) FinishGame(ctx context.Context, game storage.GameRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE games SET status = ?, winner = ?, turns = ?, ended_at = ? WHERE id = ?`,
		string(game.Status), game.Winner, game.Turns, toNullMillis(game.EndedAt), game.ID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if n == 0 {
		return apperrors.Derive(storage.ErrNotFound, map[string]string{"game": game.ID})
	}
	return nil
}

// GetGame returns a game header by id.
func (s *Store) GetGame(ctx context.Context, id string) (storage.GameRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.GameRecord{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, selectGame+` WHERE id = ?`, id)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.GameRecord{}, apperrors.Derive(storage.ErrNotFound, map[string]string{"game": id})
	}
	if err != nil {
		return storage.GameRecord{}, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

// ListGames returns the most recently started games first.
func (s *Store) ListGames(ctx context.Context, limit int) ([]storage.GameRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(ctx, selectGame+` ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []storage.GameRecord
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (storage.GameRecord, error) {
	var (
		game    storage.GameRecord
		players string
		status  string
		started int64
		ended   sql.NullInt64
	)
	if err := row.Scan(&game.ID, &game.Board, &game.Seed, &players, &status, &game.Winner, &game.Turns, &started, &ended); err != nil {
		return storage.GameRecord{}, err
	}
	if players != "" {
		game.Players = strings.Split(players, playersSeparator)
	}
	game.Status = storage.GameStatus(status)
	game.StartedAt = fromMillis(started)
	game.EndedAt = fromNullMillis(ended)
	return game, nil
}
