package actions

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Reporter emits warnings and failures as workflow commands so the runner
// shows them as annotations. It never returns errors; Failed tells the
// caller whether the step should exit non-zero.
type Reporter struct {
	mu       sync.Mutex
	w        io.Writer
	failed   bool
	warnings int
}

// NewReporter creates a Reporter writing workflow commands to w (the runner reads stdout).
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Warning emits a ::warning:: annotation.
func (r *Reporter) Warning(msg string) {
	slog.Warn("actions: warning", "message", msg)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings++
	r.command("warning", msg)
}

// SetFailed emits an ::error:: annotation and marks the run as failed.
func (r *Reporter) SetFailed(msg string) {
	slog.Error("actions: failed", "message", msg)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
	r.command("error", msg)
}

// Failed reports whether SetFailed was called.
func (r *Reporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Warnings returns the number of warnings emitted.
func (r *Reporter) Warnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

func (r *Reporter) command(name, msg string) {
	if r.w == nil {
		return
	}
	_, _ = fmt.Fprintf(r.w, "::%s::%s\n", name, EscapeData(msg))
}

// EscapeData escapes a workflow command message.
func EscapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
