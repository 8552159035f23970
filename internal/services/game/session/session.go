// Package session runs whole games: it seats players, rotates turns through
// the turn engine, bankrupts players who cannot settle, and ranks the table.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/boardwalk/internal/platform/id"
	"github.com/louisbranch/boardwalk/internal/platform/logging"
	platformotel "github.com/louisbranch/boardwalk/internal/platform/otel"
	"github.com/louisbranch/boardwalk/internal/platform/timeouts"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/bank"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/chance"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/dice"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/property"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/turn"
	"github.com/louisbranch/boardwalk/internal/services/game/storage"
)

const (
	DefaultMaxTurns     = 150
	DefaultStartBalance = 1500
	DefaultStepLimit    = 1000
)

// ErrGameOver indicates a turn was requested after the game ended.
var ErrGameOver = errors.New("game is over")

// Config tunes a game. Zero values take the defaults.
type Config struct {
	MaxTurns     int
	StartBalance int
	StepLimit    int
	Seed         int64
}

func (c Config) withDefaults() (Config, error) {
	if c.MaxTurns <= 0 {
		c.MaxTurns = DefaultMaxTurns
	}
	if c.StepLimit <= 0 {
		c.StepLimit = DefaultStepLimit
	}
	if c.StartBalance < 0 {
		return c, fmt.Errorf("start balance must not be negative")
	}
	if c.StartBalance == 0 {
		c.StartBalance = DefaultStartBalance
	}
	return c, nil
}

// Seat is a player and the chooser answering for them.
type Seat struct {
	ID      player.ID
	Name    string
	Chooser turn.Chooser
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithJournal records the game, its steps and its standings.
func WithJournal(journal storage.Journal) Option {
	return func(s *Session) { s.journal = journal }
}

// WithDice replaces the roller seeded from Config.Seed.
func WithDice(roller *dice.Roller) Option {
	return func(s *Session) { s.dice = roller }
}

// WithClock overrides the time source used for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is one game in progress.
type Session struct {
	id       string
	cfg      Config
	board    *board.Board
	roster   *player.Roster
	bank     *bank.Ledger
	props    *property.Registry
	pile     *chance.Pile
	dice     *dice.Roller
	choosers map[player.ID]turn.Chooser
	held     map[player.ID][]card.Card
	current  player.ID
	turns    int
	over     bool
	halted   bool
	started  time.Time

	logger  *zap.Logger
	journal storage.Journal
	tracer  trace.Tracer
	now     func() time.Time
	pending []storage.StepRecord
}

// New seats players, opens their accounts and shuffles deck into the chance
// pile. The first seat plays first.
func New(cfg Config, b *board.Board, deck []card.Card, seats []Seat, opts ...Option) (*Session, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("board is required")
	}
	if len(seats) < 2 {
		return nil, fmt.Errorf("at least two players are required, got %d", len(seats))
	}

	s := &Session{
		cfg:      cfg,
		board:    b,
		roster:   player.NewRoster(),
		choosers: make(map[player.ID]turn.Chooser, len(seats)),
		held:     make(map[player.ID][]card.Card, len(seats)),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.OrNop(s.logger).Named("session")
	if s.dice == nil {
		s.dice = dice.NewRoller(cfg.Seed)
	}
	s.tracer = platformotel.Tracer("github.com/louisbranch/boardwalk/internal/services/game/session")
	s.bank = bank.NewLedger(s.logger)
	s.props = property.NewRegistry(b.Properties(), s.logger)

	for _, seat := range seats {
		if err := s.roster.Add(seat.ID, seat.Name); err != nil {
			return nil, err
		}
		if err := s.bank.Open(seat.ID, cfg.StartBalance); err != nil {
			return nil, err
		}
		if seat.Chooser == nil {
			return nil, fmt.Errorf("player %s has no chooser", seat.ID)
		}
		s.choosers[seat.ID] = seat.Chooser
	}

	shuffled := append([]card.Card(nil), deck...)
	s.dice.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if s.pile, err = chance.NewPile(shuffled, s.logger); err != nil {
		return nil, err
	}

	if s.id, err = id.NewIDFromReader(s.dice); err != nil {
		return nil, fmt.Errorf("game id: %w", err)
	}
	s.current = seats[0].ID
	s.logger = s.logger.With(zap.String("game", s.id))
	return s, nil
}

// ID returns the game id.
func (s *Session) ID() string { return s.id }

// Seed returns the seed of the session dice.
func (s *Session) Seed() int64 { return s.dice.Seed() }

// Turns returns how many turns have been played.
func (s *Session) Turns() int { return s.turns }

// Current returns whose turn is next.
func (s *Session) Current() player.ID { return s.current }

// Over reports whether the game has ended.
func (s *Session) Over() bool { return s.over }

// Pile exposes the chance pile, mainly so callers can stack the deck.
func (s *Session) Pile() *chance.Pile { return s.pile }

// Run plays turns until the game ends and returns the final standings.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, "session.run", trace.WithAttributes(
		attribute.String("game.id", s.id),
		attribute.Int64("game.seed", s.Seed()),
		attribute.Int("game.players", len(s.roster.IDs())),
	))
	defer span.End()

	s.started = s.now()
	if err := s.recordStart(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	s.logger.Info("game started", zap.Int64("seed", s.Seed()), zap.Int("players", len(s.roster.IDs())))

	for !s.over {
		if err := ctx.Err(); err != nil {
			return s.halt(ctx, span, err)
		}
		if _, err := s.PlayTurn(ctx); err != nil {
			return s.halt(ctx, span, err)
		}
	}

	result := s.Result()
	if err := s.recordEnd(ctx, result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	span.SetAttributes(attribute.Int("game.turns", s.turns), attribute.String("game.winner", string(result.Winner)))
	s.logger.Info("game over", zap.Int("turns", s.turns), zap.String("winner", string(result.Winner)))
	return result, nil
}

func (s *Session) halt(ctx context.Context, span trace.Span, cause error) (Result, error) {
	s.over = true
	s.halted = true
	span.RecordError(cause)
	span.SetStatus(codes.Error, cause.Error())
	s.logger.Error("game halted", zap.Int("turns", s.turns), zap.Error(cause))
	result := s.Result()
	// A canceled run is still recorded.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.JournalFinish)
	defer cancel()
	if err := s.recordEnd(recordCtx, result); err != nil {
		s.logger.Warn("record halted game", zap.Error(err))
	}
	return result, cause
}

// TurnResult summarizes one played turn.
type TurnResult struct {
	Number   int
	Player   player.ID
	Steps    int
	Bankrupt bool
}

// PlayTurn plays one turn for the current player and advances the rotation.
func (s *Session) PlayTurn(ctx context.Context) (TurnResult, error) {
	if s.over {
		return TurnResult{}, ErrGameOver
	}
	if ctx == nil {
		ctx = context.Background()
	}
	number := s.turns + 1
	ctx, span := s.tracer.Start(ctx, "session.turn", trace.WithAttributes(
		attribute.String("game.id", s.id),
		attribute.String("player.id", string(s.current)),
		attribute.Int("turn.number", number),
	))
	defer span.End()

	result, err := s.playTurn(number)
	span.SetAttributes(attribute.Int("turn.steps", result.Steps), attribute.Bool("turn.bankrupt", result.Bankrupt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	if err := s.flush(ctx); err != nil {
		return result, err
	}

	s.turns = number
	s.advance()
	return result, nil
}

func (s *Session) playTurn(number int) (TurnResult, error) {
	pid := s.current
	result := TurnResult{Number: number, Player: pid}
	t, err := turn.New(s.deps(number), pid, s.held[pid])
	if err != nil {
		return result, err
	}
	if err := t.Add(card.NewTurnCard()); err != nil {
		return result, err
	}

	err = t.Play(s.choosers[pid], s.cfg.StepLimit)
	result.Steps = t.Steps()
	switch {
	case errors.Is(err, turn.ErrStepLimit):
		s.logger.Warn("turn did not settle", zap.String("player", string(pid)), zap.Int("steps", t.Steps()))
		result.Bankrupt = true
		return result, s.bankrupt(t)
	case err != nil:
		return result, err
	}

	if !t.Finished() {
		err := t.EndTurn()
		if errors.Is(err, turn.ErrObligationPending) {
			result.Bankrupt = true
			return result, s.bankrupt(t)
		}
		if err != nil {
			return result, err
		}
	}
	s.held[pid] = t.Kept()
	return result, nil
}

// bankrupt removes the turn's player from the game. Drawn chance cards go back
// to the pile and the player's properties return to the bank.
func (s *Session) bankrupt(t *turn.Turn) error {
	pid := t.Player()
	_, drawn := t.Abandon()
	if err := s.pile.Collect(drawn); err != nil {
		return err
	}
	for _, land := range s.props.PropertiesOf(pid) {
		if _, _, err := s.props.Clear(land); err != nil {
			return err
		}
	}
	delete(s.held, pid)
	if err := s.roster.SetStatus(pid, player.StatusBankrupt); err != nil {
		return err
	}
	balance, _ := s.bank.Balance(pid)
	s.logger.Info("player bankrupt", zap.String("player", string(pid)), zap.Int("balance", balance))
	return nil
}

func (s *Session) advance() {
	active := s.roster.Active()
	if len(active) <= 1 {
		s.over = true
		return
	}
	if s.turns >= s.cfg.MaxTurns {
		s.over = true
		return
	}
	next, ok := s.roster.NextActive(s.current)
	if !ok {
		s.over = true
		return
	}
	s.current = next
}

func (s *Session) deps(number int) turn.Deps {
	return turn.Deps{
		Board:      s.board,
		Bank:       s.bank,
		Properties: s.props,
		Chance:     s.pile,
		Players:    s.roster,
		Dice:       s.dice,
		Logger:     s.logger,
		Observer:   func(step turn.Step) { s.observe(number, step) },
	}
}

// PlayerInfo is a read-only view of a seat.
type PlayerInfo struct {
	ID         player.ID
	Name       string
	Position   int
	Status     player.Status
	Balance    int
	Held       []card.Card
	Properties []int
}

// PlayerInfo returns the current view of a seat.
func (s *Session) PlayerInfo(id player.ID) (PlayerInfo, error) {
	name, err := s.roster.Name(id)
	if err != nil {
		return PlayerInfo{}, err
	}
	pos, err := s.roster.Position(id)
	if err != nil {
		return PlayerInfo{}, err
	}
	status, err := s.roster.Status(id)
	if err != nil {
		return PlayerInfo{}, err
	}
	balance, err := s.bank.Balance(id)
	if err != nil {
		return PlayerInfo{}, err
	}
	return PlayerInfo{
		ID:         id,
		Name:       name,
		Position:   pos,
		Status:     status,
		Balance:    balance,
		Held:       append([]card.Card(nil), s.held[id]...),
		Properties: s.props.PropertiesOf(id),
	}, nil
}
