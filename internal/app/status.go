package app

import (
	"sync/atomic"

	"github.com/zeusync/colony/internal/core/events/bus"
	"github.com/zeusync/colony/internal/core/rooms"
	"github.com/zeusync/colony/internal/core/stats"
)

// Status is the colony-wide view published after every tick.
type Status struct {
	Tick   int64               `json:"tick"`
	Rooms  []rooms.Status      `json:"rooms"`
	Totals stats.Counters      `json:"totals"`
	Heap   stats.HeapReport    `json:"heap"`
	Events bus.EventBusMetrics `json:"events"`
	// LastError is the dispatch failure of the latest loop, if any.
	LastError string `json:"last_error,omitempty"`
}

// Board holds the latest Status for readers on other goroutines.
type Board struct {
	current atomic.Pointer[Status]
}

func NewBoard() *Board { return &Board{} }

func (b *Board) Set(s Status) { b.current.Store(&s) }

// Get returns the latest status, or nil before the first tick.
func (b *Board) Get() any {
	if s := b.current.Load(); s != nil {
		return *s
	}
	return nil
}
