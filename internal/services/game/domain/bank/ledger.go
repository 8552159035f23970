// Package bank keeps every player's cash balance.
//
// Running out of money is part of normal play, so Withdraw and Transfer report
// it as an Outcome instead of an error. Errors are reserved for misuse such
// as negative amounts or unknown accounts.
package bank

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/platform/logging"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

// Outcome is the result of a debit.
type Outcome int

const (
	// OutcomeApplied means the money moved.
	OutcomeApplied Outcome = iota + 1
	// OutcomeInsufficientFunds means nothing changed because the payer is short.
	OutcomeInsufficientFunds
)

// OK reports whether the debit was applied.
func (o Outcome) OK() bool { return o == OutcomeApplied }

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeInsufficientFunds:
		return "insufficient_funds"
	default:
		return "unknown"
	}
}

// ErrNegativeAmount indicates a caller passed a negative amount.
var ErrNegativeAmount = apperrors.New(apperrors.CodeNegativeAmount, "amount must not be negative")

// Ledger maps players to balances.
type Ledger struct {
	mu       sync.Mutex
	balances map[player.ID]int
	logger   *zap.Logger
}

// NewLedger returns an empty ledger.
func NewLedger(logger *zap.Logger) *Ledger {
	return &Ledger{
		balances: make(map[player.ID]int),
		logger:   logging.OrNop(logger).Named("bank"),
	}
}

// Open creates an account with an initial balance.
func (l *Ledger) Open(id player.ID, initial int) error {
	if initial < 0 {
		return negative(initial)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.balances[id]; ok {
		return apperrors.Derive(player.ErrDuplicatePlayer, map[string]string{"player": string(id)})
	}
	l.balances[id] = initial
	return nil
}

// Balance returns the current balance of id.
func (l *Ledger) Balance(id player.ID) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.balances[id]
	if !ok {
		return 0, unknownAccount(id)
	}
	return balance, nil
}

// Deposit credits amount to id.
func (l *Ledger) Deposit(id player.ID, amount int) error {
	if amount < 0 {
		return negative(amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.balances[id]; !ok {
		return unknownAccount(id)
	}
	l.balances[id] += amount
	l.logger.Debug("deposit", zap.String("player", string(id)), zap.Int("amount", amount), zap.Int("balance", l.balances[id]))
	return nil
}

// Withdraw debits amount from id when the balance covers it.
func (l *Ledger) Withdraw(id player.ID, amount int) (Outcome, error) {
	if amount < 0 {
		return 0, negative(amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.balances[id]
	if !ok {
		return 0, unknownAccount(id)
	}
	if balance < amount {
		l.logger.Debug("insufficient funds", zap.String("player", string(id)), zap.Int("amount", amount), zap.Int("balance", balance))
		return OutcomeInsufficientFunds, nil
	}
	l.balances[id] = balance - amount
	l.logger.Debug("withdraw", zap.String("player", string(id)), zap.Int("amount", amount), zap.Int("balance", l.balances[id]))
	return OutcomeApplied, nil
}

// Transfer moves amount from one account to another atomically.
func (l *Ledger) Transfer(from, to player.ID, amount int) (Outcome, error) {
	if amount < 0 {
		return 0, negative(amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.balances[from]
	if !ok {
		return 0, unknownAccount(from)
	}
	if _, ok := l.balances[to]; !ok {
		return 0, unknownAccount(to)
	}
	if balance < amount {
		return OutcomeInsufficientFunds, nil
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	l.logger.Debug("transfer",
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Int("amount", amount),
	)
	return OutcomeApplied, nil
}

// Total sums every balance.
func (l *Ledger) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, balance := range l.balances {
		total += balance
	}
	return total
}

func negative(amount int) error {
	return apperrors.Derive(ErrNegativeAmount, map[string]string{"amount": strconv.Itoa(amount)})
}

func unknownAccount(id player.ID) error {
	return apperrors.Derive(player.ErrUnknownPlayer, map[string]string{"player": string(id)})
}
