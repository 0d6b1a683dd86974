package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the cash-movement direction of a ledger transaction. An advance
// credits the worker's balance (they owe more); repayments and deposits debit
// it (they owe less).
type Kind string

const (
	KindAdvance   Kind = "advance"
	KindRepayment Kind = "repayment"
	KindDeposit   Kind = "deposit"
)

// IsDebit reports whether the kind reduces the worker's balance.
func (k Kind) IsDebit() bool {
	return k == KindRepayment || k == KindDeposit
}

// IsValid reports whether k is a known transaction kind.
func (k Kind) IsValid() bool {
	return k == KindAdvance || k == KindRepayment || k == KindDeposit
}

// LedgerTransaction is a dated, signed cash movement against a worker's
// running balance. Rows are immutable once written.
type LedgerTransaction struct {
	ID           string
	WorkerID     string
	Kind         Kind
	Amount       decimal.Decimal
	Date         time.Time
	BalanceAfter decimal.Decimal
	Notes        *string
	CreatedAt    time.Time
}

// SignedAmount returns the transaction amount with the sign implied by its
// kind: positive for advances, negative for repayments and deposits.
func (t LedgerTransaction) SignedAmount() decimal.Decimal {
	if t.Kind.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Apply computes the balance after posting a transaction of the given kind
// and amount against the current balance. Debits that would drive the
// balance negative are rejected with ErrInsufficientBalance.
func Apply(balance decimal.Decimal, kind Kind, amount decimal.Decimal) (decimal.Decimal, error) {
	if !kind.IsValid() {
		return decimal.Zero, ErrInvalidKind
	}
	if kind.IsDebit() {
		if amount.GreaterThan(balance) {
			return decimal.Zero, ErrInsufficientBalance
		}
		return balance.Sub(amount), nil
	}
	return balance.Add(amount), nil
}

// Fold recomputes a balance from scratch over a chronological history.
func Fold(history []LedgerTransaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range history {
		balance = balance.Add(t.SignedAmount())
	}
	return balance
}
