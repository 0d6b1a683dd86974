package worker

import "errors"

var (
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrWorkerNameExists = errors.New("worker name already exists")
	ErrWorkerInactive   = errors.New("worker is not active")
)
