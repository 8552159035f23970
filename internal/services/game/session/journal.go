package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/louisbranch/boardwalk/internal/services/game/domain/turn"
	"github.com/louisbranch/boardwalk/internal/services/game/storage"
)

// observe buffers a step for the journal. Steps are written once the turn is
// over so a failed write never interrupts the engine mid-turn.
func (s *Session) observe(number int, step turn.Step) {
	if s.journal == nil || step.Idle {
		return
	}
	balance, _ := s.bank.Balance(s.current)
	s.pending = append(s.pending, storage.StepRecord{
		Turn:     number,
		Step:     step.Number,
		Player:   step.Player,
		Card:     step.Card.Name,
		Action:   step.Card.Action.String(),
		Decision: step.Decision.String(),
		Executed: step.Executed,
		Requeued: step.Requeued,
		Balance:  balance,
	})
}

func (s *Session) flush(ctx context.Context) error {
	if s.journal == nil || len(s.pending) == 0 {
		return nil
	}
	steps := s.pending
	s.pending = nil
	if err := s.journal.AppendSteps(ctx, s.id, steps); err != nil {
		return fmt.Errorf("journal steps: %w", err)
	}
	return nil
}

func (s *Session) recordStart(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}
	ids := s.roster.IDs()
	players := make([]string, len(ids))
	for i, pid := range ids {
		players[i] = string(pid)
	}
	err := s.journal.CreateGame(ctx, storage.GameRecord{
		ID:        s.id,
		Board:     s.board.Name(),
		Seed:      s.Seed(),
		Players:   players,
		Status:    storage.GameRunning,
		StartedAt: s.started,
	})
	if err != nil {
		return fmt.Errorf("journal game: %w", err)
	}
	return nil
}

func (s *Session) recordEnd(ctx context.Context, result Result) error {
	if s.journal == nil {
		return nil
	}
	if err := s.flush(ctx); err != nil {
		s.logger.Warn("drop unjournaled steps", zap.Error(err))
	}
	ended := s.now()
	status := storage.GameFinished
	if result.Halted {
		status = storage.GameHalted
	}
	if err := s.journal.FinishGame(ctx, storage.GameRecord{
		ID:      s.id,
		Status:  status,
		Winner:  string(result.Winner),
		Turns:   result.Turns,
		EndedAt: &ended,
	}); err != nil {
		return fmt.Errorf("journal outcome: %w", err)
	}
	standings := make([]storage.StandingRecord, len(result.Standings))
	for i, st := range result.Standings {
		standings[i] = storage.StandingRecord{
			GameID:     s.id,
			Rank:       st.Rank,
			Player:     string(st.Player),
			Status:     st.Status.String(),
			Balance:    st.Balance,
			Properties: st.Properties,
		}
	}
	if err := s.journal.SaveStandings(ctx, s.id, standings); err != nil {
		return fmt.Errorf("journal standings: %w", err)
	}
	return nil
}
