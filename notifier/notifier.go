// Package notifier defines the progress/log/warning callback surface
// through which package engine reports to its caller. The core never
// writes to standard streams directly (SPEC_FULL.md §7); every
// user-visible message passes through a Notifier.
package notifier

import (
	"fmt"

	"github.com/jmaglic/ballpit/ballpiterr"
)

// Notifier receives progress updates, free-form log lines, and
// soft-warnings during an engine run. Implementations must be safe to call
// from a single goroutine at a time; engine.Run never calls a Notifier
// concurrently.
type Notifier interface {
	// Progress reports a percent-complete value in [0, 100].
	Progress(percent int)
	// Log emits a free-form informational line.
	Log(line string)
	// Warn reports a non-fatal condition: the run continues, but the
	// caller should surface it (spec.md §7's "soft-warnings").
	Warn(code ballpiterr.Code, msg string)
}

// Discard is a Notifier that drops every call. Useful in tests and
// library callers that don't want progress reporting.
type Discard struct{}

func (Discard) Progress(int)                        {}
func (Discard) Log(string)                           {}
func (Discard) Warn(ballpiterr.Code, string)          {}

// Stdout is a Notifier that writes to standard output, the direct
// generalization of the original's bare std::cout fallback path (used
// when the original ran headless, outside its GUI).
type Stdout struct{}

func (Stdout) Progress(percent int) {
	fmt.Printf("[%3d%%]\n", percent)
}

func (Stdout) Log(line string) {
	fmt.Println(line)
}

func (Stdout) Warn(code ballpiterr.Code, msg string) {
	fmt.Printf("warning %d: %s\n", code, msg)
}
