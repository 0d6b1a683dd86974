package settlement

import "errors"

var (
	ErrBonusRecordNotFound = errors.New("bonus record not found")
	ErrHistoryNotFound     = errors.New("settlement history record not found")
	ErrExceedsEntitlement  = errors.New("deposit exceeds computed gross bonus")
	ErrRecordFinalized     = errors.New("record is finalized and can no longer be adjusted")
	ErrNothingToFinalize   = errors.New("no records to finalize for this period")
	ErrWorkerNotFound      = errors.New("worker not found")
)
