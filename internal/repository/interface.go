package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/CosmoTheDev/eventsync/internal/event"
)

// EventSource rebuilds events from the hosting platform's API so they can be
// dispatched again (e.g. after a webhook delivery was lost).
type EventSource interface {
	// Name identifies the provider (e.g. "github").
	Name() string

	// WorkflowRunEvent returns a "completed" workflow_run event for run id.
	WorkflowRunEvent(ctx context.Context, owner, name string, id int64) (event.Event, error)

	// PullRequestEvent returns a pull_request event for the given number and action.
	PullRequestEvent(ctx context.Context, owner, name string, number int, action string) (event.Event, error)

	// IssueEvent returns an issues event for the given number and action.
	IssueEvent(ctx context.Context, owner, name string, number int, action string) (event.Event, error)
}

// SplitFullName splits "owner/name".
func SplitFullName(fullName string) (owner, name string, err error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(fullName), "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected owner/name, got %q", fullName)
	}
	return parts[0], parts[1], nil
}
