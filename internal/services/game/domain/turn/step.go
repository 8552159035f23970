package turn

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
)

// Step records what one engine step did.
type Step struct {
	Number   int
	Player   string
	Card     card.Card
	Decision Decision
	// Executed is false when the card was declined or deferred.
	Executed bool
	Produced []card.Card
	// Requeued means the card put itself back, as an unpaid debt does.
	Requeued bool
	// Stalled means the card re-queued itself and the player has nothing
	// left to accept that could change the outcome.
	Stalled bool
	// Idle means nothing could be acted on.
	Idle     bool
	Finished bool
}

// Step acts on the next pending card. Mandatory cards execute; others are
// offered to ch. A nil chooser declines every offer.
func (t *Turn) Step(ch Chooser) (Step, error) {
	if t.finished {
		return Step{}, ErrTurnFinished
	}
	e, ok := t.next()
	if !ok {
		return Step{Player: string(t.player), Idle: true}, nil
	}

	decision := DecisionAccept
	if !e.card.Mandatory() {
		decision = DecisionDecline
		if ch != nil {
			d, err := ch.Choose(t, e.card)
			if err != nil {
				return Step{}, fmt.Errorf("choose %s: %w", e.card.Name, err)
			}
			decision = d
		}
	}

	t.steps++
	step := Step{Number: t.steps, Player: string(t.player), Card: e.card, Decision: decision}
	switch decision {
	case DecisionAccept:
		produced, requeued, err := t.execute(e)
		if err != nil {
			return Step{}, err
		}
		step.Executed = true
		step.Produced = produced
		step.Requeued = requeued
		step.Stalled = requeued && !t.hasOffer()
	case DecisionDecline:
		if e.card.Kind.Persistent() {
			t.declined[e.seq] = true
		} else {
			t.remove(e.seq)
		}
	case DecisionDefer:
		t.deferred[e.seq] = true
	default:
		return Step{}, fmt.Errorf("unknown decision %d for %s", decision, e.card.Name)
	}
	step.Finished = t.finished
	t.logger.Debug("step",
		zap.Int("step", step.Number),
		zap.String("card", e.card.Name),
		zap.Stringer("decision", decision),
		zap.Int("produced", len(step.Produced)),
		zap.Bool("requeued", step.Requeued),
	)
	if t.deps.Observer != nil {
		t.deps.Observer(step)
	}
	return step, nil
}

// Play steps until the turn finishes, nothing is left to act on, or an
// obligation stalls. A limit of zero or less means no limit.
func (t *Turn) Play(ch Chooser, limit int) error {
	for i := 0; limit <= 0 || i < limit; i++ {
		step, err := t.Step(ch)
		if err != nil {
			return err
		}
		if step.Finished || step.Idle || step.Stalled {
			return nil
		}
	}
	return apperrors.Derive(ErrStepLimit, map[string]string{"player": string(t.player), "limit": fmt.Sprint(limit)})
}

// Use executes a specific held card out of order.
func (t *Turn) Use(c card.Card) ([]card.Card, error) {
	if t.finished {
		return nil, ErrTurnFinished
	}
	i := t.find(c)
	if i == -1 {
		return nil, apperrors.Derive(ErrCardNotHeld, map[string]string{"card": c.Name})
	}
	e := t.hand[i]
	t.steps++
	produced, requeued, err := t.execute(e)
	if err != nil {
		return nil, err
	}
	if t.deps.Observer != nil {
		t.deps.Observer(Step{
			Number:   t.steps,
			Player:   string(t.player),
			Card:     e.card,
			Decision: DecisionAccept,
			Executed: true,
			Produced: produced,
			Requeued: requeued,
			Stalled:  requeued && !t.hasOffer(),
			Finished: t.finished,
		})
	}
	return produced, nil
}

// EndTurn finishes the turn. It fails while obligations other than the
// closing EndTurn card remain. Only keepable and contract cards survive.
func (t *Turn) EndTurn() error {
	if t.finished {
		return ErrTurnFinished
	}
	if pending := t.obligations(); len(pending) > 0 {
		names := make([]string, len(pending))
		for i, c := range pending {
			names[i] = c.Name
		}
		return apperrors.Derive(ErrObligationPending, map[string]string{
			"player": string(t.player),
			"cards":  strings.Join(names, ", "),
		})
	}
	kept := t.hand[:0]
	for _, e := range t.hand {
		if e.card.Kind.Persistent() {
			kept = append(kept, e)
		}
	}
	t.hand = kept
	t.finished = true
	t.logger.Info("turn ended", zap.Int("steps", t.steps), zap.Int("kept", len(kept)))
	return nil
}

// execute runs e, queues what it produced and reports whether e re-queued
// itself. On failure e goes back in hand untouched.
func (t *Turn) execute(e entry) ([]card.Card, bool, error) {
	t.remove(e.seq)
	produced, err := card.Execute(&cardContext{t: t}, e.card)
	if err != nil {
		t.hand = append(t.hand, e)
		return nil, false, wrapContractViolation(e.card.Name, err)
	}
	clear(t.deferred)
	if t.finished {
		return produced, false, nil
	}
	requeued := false
	for _, c := range produced {
		if err := card.Validate(c); err != nil {
			return nil, false, wrapContractViolation(e.card.Name, err)
		}
		if c.Equal(e.card) {
			requeued = true
		}
		t.push(c)
	}
	return produced, requeued, nil
}
