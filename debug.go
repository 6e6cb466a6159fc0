package spotlight

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
	tickCount    int
}

// debugLog prints timing and command stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[spotlight] frame %d | traverse: %v | submit: %v | commands: %d | tick callbacks: %d\n",
		s.ticker.Frame(), stats.traverseTime, stats.submitTime, stats.commandCount, stats.tickCount)
}

// logf writes a warning to stderr regardless of debug mode.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[spotlight] "+format+"\n", args...)
}

// debugf writes to stderr only in debug mode.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	logf(format, args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode
// callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("spotlight debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr when a node has so many children
// that a split probably ran on far more text than intended.
const debugMaxChildCount = 2000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logf("warning: node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
