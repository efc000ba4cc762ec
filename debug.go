package glide

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and scheduling metrics.
// Only populated when debug mode is on.
type debugStats struct {
	frame     uint64
	events    int
	tickers   int
	drainTime time.Duration
	tickTime  time.Duration
}

// debugMaxTickers is the registered ticker count above which a frame is
// reported as suspicious. A stage has a handful of components, so a large
// count means something registers per element or never unregisters.
const debugMaxTickers = 32

// debugLog prints per-frame stats to stderr.
func (s *Stage) debugLog(stats debugStats) {
	if !s.ctx.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[glide] frame %d | events: %d | tickers: %d | drain: %v | tick: %v\n",
		stats.frame, stats.events, stats.tickers, stats.drainTime, stats.tickTime)
	if stats.tickers > debugMaxTickers {
		_, _ = fmt.Fprintf(os.Stderr, "[glide] warning: %d tickers registered (threshold %d)\n",
			stats.tickers, debugMaxTickers)
	}
}

// debugWarn prints a registration warning to stderr in debug mode.
func debugWarn(ctx *Context, format string, args ...any) {
	if ctx == nil || !ctx.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[glide] warning: "+format+"\n", args...)
}
