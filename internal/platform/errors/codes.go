// Package errors provides structured, code-addressed domain errors.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Bank errors
	CodeNegativeAmount Code = "NEGATIVE_AMOUNT"

	// Player errors
	CodeUnknownPlayer   Code = "UNKNOWN_PLAYER"
	CodeDuplicatePlayer Code = "DUPLICATE_PLAYER"

	// Board errors
	CodeUnknownLand  Code = "UNKNOWN_LAND"
	CodeNotAProperty Code = "NOT_A_PROPERTY"
	CodeInvalidBoard Code = "INVALID_BOARD"

	// Chance pile errors
	CodeChancePileEmpty Code = "CHANCE_PILE_EMPTY"
	CodeChanceNotDrawn  Code = "CHANCE_NOT_DRAWN"
	CodeNotAChanceCard  Code = "NOT_A_CHANCE_CARD"

	// Card errors
	CodeInvalidCard   Code = "INVALID_CARD"
	CodeUnknownEffect Code = "UNKNOWN_EFFECT"

	// Turn errors
	CodeCardNotHeld       Code = "CARD_NOT_HELD"
	CodeObligationPending Code = "OBLIGATION_PENDING"
	CodeTurnFinished      Code = "TURN_FINISHED"
	CodeStepLimit         Code = "STEP_LIMIT"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)

// Recoverable reports whether an error with this code can be handled by the
// game loop instead of halting it.
func (c Code) Recoverable() bool {
	switch c {
	case CodeObligationPending, CodeChancePileEmpty:
		return true
	default:
		return false
	}
}
