package ledger

import "errors"

var (
	ErrInsufficientBalance = errors.New("debit amount exceeds current balance")
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrWorkerNotFound      = errors.New("worker not found")
)
