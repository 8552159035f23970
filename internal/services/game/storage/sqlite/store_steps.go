package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/boardwalk/internal/services/game/storage"
	"github.com/louisbranch/boardwalk/internal/services/game/storage/integrity"
)

// AppendSteps stores steps after the last journaled step of gameID, chaining
// each one to its predecessor.
func (s *Store) AppendSteps(ctx context.Context, gameID string, steps []storage.StepRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if len(steps) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var (
			lastSeq  int64
			prevHash string
		)
		err := tx.QueryRowContext(ctx,
			`SELECT seq, hash FROM steps WHERE game_id = ? ORDER BY seq DESC LIMIT 1`, gameID,
		).Scan(&lastSeq, &prevHash)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("read last step: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO steps (game_id, seq, turn, step, player, card, action, decision, executed, requeued, balance, hash)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare step insert: %w", err)
		}
		defer stmt.Close()

		for _, step := range steps {
			lastSeq++
			step.GameID = gameID
			step.Seq = lastSeq
			hash, err := integrity.ChainHash(step, prevHash)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx,
				step.GameID, step.Seq, step.Turn, step.Step, step.Player, step.Card, step.Action,
				step.Decision, boolToInt(step.Executed), boolToInt(step.Requeued), step.Balance, hash,
			); err != nil {
				return fmt.Errorf("insert step %d: %w", step.Seq, err)
			}
			prevHash = hash
		}
		return nil
	})
}

// ListSteps returns the journaled steps of gameID in order.
func (s *Store) ListSteps(ctx context.Context, gameID string) ([]storage.StepRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, seq, turn, step, player, card, action, decision, executed, requeued, balance, hash
		 FROM steps WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []storage.StepRecord
	for rows.Next() {
		var (
			step               storage.StepRecord
			executed, requeued int
		)
		if err := rows.Scan(&step.GameID, &step.Seq, &step.Turn, &step.Step, &step.Player, &step.Card,
			&step.Action, &step.Decision, &executed, &requeued, &step.Balance, &step.Hash); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step.Executed = executed != 0
		step.Requeued = requeued != 0
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

// VerifySteps checks the hash chain of gameID.
func (s *Store) VerifySteps(ctx context.Context, gameID string) error {
	steps, err := s.ListSteps(ctx, gameID)
	if err != nil {
		return err
	}
	return integrity.Verify(steps)
}
