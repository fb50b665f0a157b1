package jobs

import "errors"

var (
	ErrDuplicateJob = errors.New("jobs: duplicate job id")
	ErrInvalidJob   = errors.New("jobs: invalid job")
)
