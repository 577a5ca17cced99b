// Package timedrepos decorates repositories to log the cost of each storage call.
package timedrepos

import (
	"runtime"
	"time"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
)

var (
	nowFunc          = time.Now             // mockable
	readMemStatsFunc = runtime.ReadMemStats // mockable
)

type mark struct {
	start      time.Time
	totalAlloc uint64
	mallocs    uint64
}

// begin snapshots the clock and the allocator counters.
func begin() mark {
	var ms runtime.MemStats
	readMemStatsFunc(&ms)
	return mark{start: nowFunc(), totalAlloc: ms.TotalAlloc, mallocs: ms.Mallocs}
}

// track logs the duration and allocations of the call started at m. Use it as `defer track(logger, "op", begin())`.
// Timings are logged at info level so they show up whenever profiling is on, debug or not.
func track(logger core.Logger, op string, m mark) {
	var ms runtime.MemStats
	readMemStatsFunc(&ms)
	logger.Info("storage call", map[string]interface{}{
		"op":       op,
		"duration": nowFunc().Sub(m.start).String(),
		"alloc":    ms.TotalAlloc - m.totalAlloc,
		"mallocs":  ms.Mallocs - m.mallocs,
		"heap":     ms.HeapAlloc,
	})
}
