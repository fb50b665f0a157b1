package stats

import (
	"runtime"
	"runtime/debug"

	"github.com/zeusync/colony/internal/core/observability/log"
)

const (
	SoftHeapRatio = 0.65
	HardHeapRatio = 0.85
	// MaxTicksWithoutGC forces a collection when the runtime has not run one for this long.
	MaxTicksWithoutGC = 100
)

// HeapReport is what one Observe call saw and did.
type HeapReport struct {
	Tick      int64   `json:"tick"`
	HeapBytes uint64  `json:"heap_bytes"`
	Ratio     float64 `json:"ratio"`
	NewGCs    uint32  `json:"new_gcs"`
	Forced    bool    `json:"forced"`
	Freed     bool    `json:"freed"`
}

type HeapMonitor struct {
	limit  uint64
	logger log.Log

	lastNumGC  uint32
	lastGCTick int64

	read    func() (heap uint64, numGC uint32)
	collect func()
	free    func()
}

// NewHeapMonitor watches heap use against limit bytes. A zero limit disables
// the ratio thresholds but keeps the idle collection.
func NewHeapMonitor(limit uint64, logger log.Log) *HeapMonitor {
	if logger == nil {
		logger = log.NewNop()
	}
	return &HeapMonitor{
		limit:   limit,
		logger:  logger,
		read:    readMemStats,
		collect: runtime.GC,
		free:    debug.FreeOSMemory,
	}
}

func readMemStats() (uint64, uint32) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc, ms.NumGC
}

// Observe runs once after every loop.
func (m *HeapMonitor) Observe(tick int64) HeapReport {
	heap, numGC := m.read()
	r := HeapReport{Tick: tick, HeapBytes: heap, NewGCs: numGC - m.lastNumGC}
	if m.limit > 0 {
		r.Ratio = float64(heap) / float64(m.limit)
	}

	if r.NewGCs > 0 {
		m.logger.Debug("gc observed", log.Int("cycles", int(r.NewGCs)), log.Tick(tick))
		m.lastGCTick = tick
	}
	m.lastNumGC = numGC

	switch {
	case m.limit > 0 && r.Ratio >= HardHeapRatio:
		m.free()
		r.Forced, r.Freed = true, true
	case m.limit > 0 && r.Ratio >= SoftHeapRatio:
		m.collect()
		r.Forced = true
	case tick-m.lastGCTick >= MaxTicksWithoutGC:
		m.collect()
		r.Forced = true
	}

	if r.Forced {
		m.logger.Info("gc forced",
			log.Int64("heap_bytes", int64(heap)),
			log.Float64("ratio", r.Ratio),
			log.Bool("freed", r.Freed),
			log.Tick(tick),
		)
		m.lastGCTick = tick
		_, m.lastNumGC = m.read()
	}
	return r
}
