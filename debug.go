package arbor

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// debugStats holds per-frame timing and stack metrics.
// Only populated when the App is in debug mode.
type debugStats struct {
	eventTime    time.Duration
	updateTime   time.Duration
	renderTime   time.Duration
	eventCount   int
	requestCount int
	stackDepth   int
}

// debugLogger writes "[arbor]" prefixed diagnostics. A nil logger discards
// everything, so callers never check whether debug mode is on.
type debugLogger struct {
	w     io.Writer
	color bool
}

// newDebugLogger returns a logger writing to w. The prefix is colored when w
// is a terminal.
func newDebugLogger(w io.Writer) *debugLogger {
	l := &debugLogger{w: w}
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		l.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return l
}

const (
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func (l *debugLogger) prefix(color string) string {
	if l.color {
		return color + "[arbor]" + ansiReset + " "
	}
	return "[arbor] "
}

func (l *debugLogger) printf(format string, args ...any) {
	if l == nil {
		return
	}
	_, _ = fmt.Fprintf(l.w, l.prefix(ansiCyan)+format+"\n", args...)
}

func (l *debugLogger) warnf(format string, args ...any) {
	if l == nil {
		return
	}
	_, _ = fmt.Fprintf(l.w, l.prefix(ansiYellow)+"warning: "+format+"\n", args...)
}

// frame prints the stats for one frame.
func (l *debugLogger) frame(n uint64, stats debugStats) {
	if l == nil {
		return
	}
	total := stats.eventTime + stats.updateTime + stats.renderTime
	l.printf("frame %d | events: %v | update: %v | render: %v | total: %v",
		n, stats.eventTime, stats.updateTime, stats.renderTime, total)
	l.printf("frame %d | events: %d | requests: %d | stack depth: %d",
		n, stats.eventCount, stats.requestCount, stats.stackDepth)
	if stats.stackDepth > debugMaxStackDepth {
		l.warnf("state stack depth %d exceeds %d", stats.stackDepth, debugMaxStackDepth)
	}
}

// debugMaxStackDepth is the depth past which a runaway push loop is likely.
const debugMaxStackDepth = 16
