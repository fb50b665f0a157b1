package creeps

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownJob    = errors.New("creeps: job label does not resolve")
	ErrBehaviorPanic = errors.New("creeps: behavior panicked")
	ErrNilCatalog    = errors.New("creeps: nil catalog")
)

// DispatchError attributes a failed behavior to its unit and job. It stops the
// rest of the tick's dispatch loop.
type DispatchError struct {
	UnitID   string
	UnitName string
	JobID    string
	Tick     int64
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s (%s) as %s at tick %d: %v", e.UnitName, e.UnitID, e.JobID, e.Tick, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
