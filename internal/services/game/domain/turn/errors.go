package turn

import (
	"errors"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
)

var (
	// ErrObligationPending indicates EndTurn was refused because mandatory
	// cards remain.
	ErrObligationPending = apperrors.New(apperrors.CodeObligationPending, "obligation pending")
	// ErrTurnFinished indicates work was submitted to a finished turn.
	ErrTurnFinished = apperrors.New(apperrors.CodeTurnFinished, "turn is finished")
	// ErrCardNotHeld indicates a card the player does not hold.
	ErrCardNotHeld = apperrors.New(apperrors.CodeCardNotHeld, "card not held")
	// ErrStepLimit indicates Play ran out of steps.
	ErrStepLimit = apperrors.New(apperrors.CodeStepLimit, "step limit reached")
)

// contractViolation marks an error raised while a card executed. The turn
// state is no longer trustworthy and the game must stop.
type contractViolation struct {
	card string
	err  error
}

func (e *contractViolation) Error() string { return "execute " + e.card + ": " + e.err.Error() }
func (e *contractViolation) Unwrap() error { return e.err }

// ContractViolation returns true from IsContractViolation checks.
func (e *contractViolation) ContractViolation() bool { return true }

func wrapContractViolation(card string, err error) error {
	if err == nil {
		return nil
	}
	return &contractViolation{card: card, err: err}
}

// IsContractViolation reports whether err (or any error in its chain) came
// from a card that failed to execute.
func IsContractViolation(err error) bool {
	var target interface{ ContractViolation() bool }
	if errors.As(err, &target) {
		return target.ContractViolation()
	}
	return false
}
