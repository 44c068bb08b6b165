package notify

//go:generate mockgen -source=./interface.go -destination=./mocks/platform.mock.go -package=notifymocks

import "context"

// Message is one notification, independent of the chat backend that delivers it.
type Message struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`     // optional deep link (PR, issue or run page)
	Creator string `json:"creator,omitempty"` // optional login of the originating user
}

// Platform is implemented by each chat backend.
//
// Send makes exactly one delivery attempt. A failed delivery is reported
// through the platform's FailureReporter and also returned, so callers can
// branch on the result without parsing logs.
type Platform interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// FailureReporter receives delivery failures. In a GitHub Actions run this
// marks the step as failed; elsewhere it is usually a logger.
type FailureReporter interface {
	SetFailed(msg string)
}

// discardReporter is used when no reporter is configured.
type discardReporter struct{}

func (discardReporter) SetFailed(string) {}
