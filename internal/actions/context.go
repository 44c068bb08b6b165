// Package actions is the glue between eventsync and the GitHub Actions
// runner: the event context it exposes through the environment, workflow
// commands for warnings and failures, and step outputs.
package actions

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoEvent is returned when the runner environment names no event payload.
var ErrNoEvent = errors.New("GITHUB_EVENT_NAME or GITHUB_EVENT_PATH is not set")

// Context captures the parts of the runner environment eventsync reads.
type Context struct {
	// EventName is the triggering event, e.g. "pull_request" or "workflow_run".
	EventName string
	// EventPath is the file holding the full webhook payload.
	EventPath string
	// Repository is "owner/name".
	Repository string
	RunID      string
	// OutputPath is the file step outputs are appended to.
	OutputPath string
	InActions  bool
}

// ContextFromEnv builds a Context from getenv (usually os.Getenv).
func ContextFromEnv(getenv func(string) string) Context {
	return Context{
		EventName:  strings.TrimSpace(getenv("GITHUB_EVENT_NAME")),
		EventPath:  strings.TrimSpace(getenv("GITHUB_EVENT_PATH")),
		Repository: getenv("GITHUB_REPOSITORY"),
		RunID:      getenv("GITHUB_RUN_ID"),
		OutputPath: getenv("GITHUB_OUTPUT"),
		InActions:  getenv("GITHUB_ACTIONS") == "true",
	}
}

// ReadPayload returns the raw event payload.
func (c Context) ReadPayload() ([]byte, error) {
	if c.EventName == "" || c.EventPath == "" {
		return nil, ErrNoEvent
	}
	b, err := os.ReadFile(c.EventPath) // #nosec G304 -- path is provided by the Actions runner
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	return b, nil
}

// SetOutput appends name=value to the step output file at path. An empty
// path (not running under Actions) is a no-op.
func SetOutput(path, name, value string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path is provided by the Actions runner
	if err != nil {
		return fmt.Errorf("opening step output file: %w", err)
	}
	defer f.Close()

	line := name + "=" + value + "\n"
	if strings.ContainsAny(value, "\r\n") {
		const delim = "EVENTSYNC_EOF"
		line = name + "<<" + delim + "\n" + value + "\n" + delim + "\n"
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("writing step output: %w", err)
	}
	return nil
}
