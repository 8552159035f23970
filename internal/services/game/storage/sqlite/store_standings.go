package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/louisbranch/boardwalk/internal/services/game/storage"
)

// SaveStandings replaces the standings of gameID.
func (s *Store) SaveStandings(ctx context.Context, gameID string, standings []storage.StandingRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM standings WHERE game_id = ?`, gameID); err != nil {
			return fmt.Errorf("clear standings: %w", err)
		}
		for _, st := range standings {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO standings (game_id, rank, player, status, balance, properties) VALUES (?, ?, ?, ?, ?, ?)`,
				gameID, st.Rank, st.Player, st.Status, st.Balance, st.Properties,
			); err != nil {
				return fmt.Errorf("insert standing %d: %w", st.Rank, err)
			}
		}
		return nil
	})
}

// ListStandings returns the standings of gameID by rank.
func (s *Store) ListStandings(ctx context.Context, gameID string) ([]storage.StandingRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, rank, player, status, balance, properties FROM standings WHERE game_id = ? ORDER BY rank`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	defer rows.Close()

	var out []storage.StandingRecord
	for rows.Next() {
		var st storage.StandingRecord
		if err := rows.Scan(&st.GameID, &st.Rank, &st.Player, &st.Status, &st.Balance, &st.Properties); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
