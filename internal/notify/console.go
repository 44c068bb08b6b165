package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// ConsoleChannel writes the card that would be posted to w instead of
// delivering it. Used for dry runs.
type ConsoleChannel struct {
	mu       sync.Mutex
	w        io.Writer
	mentions map[string]string
	reporter FailureReporter
}

// NewConsole creates a ConsoleChannel writing to w. reporter may be nil.
func NewConsole(w io.Writer, mentions map[string]string, reporter FailureReporter) *ConsoleChannel {
	if reporter == nil {
		reporter = discardReporter{}
	}
	return &ConsoleChannel{w: w, mentions: mentions, reporter: reporter}
}

func (c *ConsoleChannel) Name() string { return "console" }

// Send writes the card. A write failure is reported once and returned.
func (c *ConsoleChannel) Send(_ context.Context, msg Message) error {
	if err := c.write(msg); err != nil {
		c.reporter.SetFailed(fmt.Sprintf("Failed to write message: %v", err))
		return err
	}
	return nil
}

func (c *ConsoleChannel) write(msg Message) error {
	b, err := json.MarshalIndent(BuildCard(msg, c.mentions), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding card: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err = fmt.Fprintln(c.w, string(b))
	return err
}
