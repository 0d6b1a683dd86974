package attendance

import "errors"

var (
	ErrEntryNotFound  = errors.New("attendance entry not found")
	ErrInvalidStatus  = errors.New("invalid attendance status")
	ErrWorkerNotFound = errors.New("worker not found")
)
