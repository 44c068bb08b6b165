package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CosmoTheDev/eventsync/internal/notify"
	"github.com/CosmoTheDev/eventsync/models"
)

// Warner receives the non-fatal warning emitted for every skipped event.
type Warner interface {
	Warning(msg string)
}

// Status is the result of handling one event.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome describes what Handle did. Message is set whenever a message was
// formed, including failed deliveries.
type Outcome struct {
	Status  Status
	Reason  string
	Message *notify.Message
	Err     error
}

// Handle forms the message for ev and sends it through p. It calls p.Send at
// most once and calls w.Warning exactly once for every skip. A nil w logs
// warnings through slog.
func Handle(ctx context.Context, ev Event, p notify.Platform, w Warner) Outcome {
	if w == nil {
		w = slogWarner{}
	}

	var (
		messages map[string]notify.Message
		reason   string
	)
	switch ev.Kind {
	case KindPullRequest:
		messages, reason = pullRequestMessages(ev.PullRequest)
	case KindIssue:
		messages, reason = issueMessages(ev.Issue)
	case KindWorkflowRun:
		messages, reason = workflowRunMessages(ev.WorkflowRun)
	default:
		reason = fmt.Sprintf("Unsupported event kind %q.", ev.Kind)
	}
	if reason != "" {
		return skip(w, reason)
	}

	msg, ok := messages[ev.Action]
	if !ok {
		return skip(w, fmt.Sprintf("No message found for action %q of %s event.", ev.Action, ev.Kind.Label()))
	}

	slog.Debug("event: sending", "kind", ev.Kind, "action", ev.Action, "repo", ev.Repository, "platform", p.Name())
	if err := p.Send(ctx, msg); err != nil {
		return Outcome{Status: StatusFailed, Reason: err.Error(), Message: &msg, Err: err}
	}
	slog.Info("event: notification sent", "kind", ev.Kind, "action", ev.Action, "title", msg.Title)
	return Outcome{Status: StatusSent, Message: &msg}
}

func skip(w Warner, reason string) Outcome {
	w.Warning(reason)
	return Outcome{Status: StatusSkipped, Reason: reason}
}

func pullRequestMessages(pr *models.PullRequest) (map[string]notify.Message, string) {
	if pr == nil {
		return nil, "No pull request found in the event payload."
	}
	closedTitle := "❌ Pull Request closed"
	if pr.Merged {
		closedTitle = "🎉 Pull Request merged"
	}
	msg := func(title string) notify.Message {
		return notify.Message{
			Title:   title,
			Content: "PR title: " + pr.Title,
			URL:     pr.HTMLURL,
			Creator: pr.User,
		}
	}
	return map[string]notify.Message{
		"opened":   msg("🚀 NEW Pull Request"),
		"closed":   msg(closedTitle),
		"reopened": msg("🔄 Pull Request reopened"),
	}, ""
}

func issueMessages(is *models.Issue) (map[string]notify.Message, string) {
	if is == nil {
		return nil, "No issue found in the event payload."
	}
	msg := func(title string) notify.Message {
		return notify.Message{
			Title:   title,
			Content: "Issue title: " + is.Title,
			URL:     is.HTMLURL,
			Creator: is.User,
		}
	}
	return map[string]notify.Message{
		"opened":   msg("🆕 Issue created"),
		"closed":   msg("❌ Issue closed"),
		"reopened": msg("🔄 Issue reopened"),
	}, ""
}

// workflowRunMessages only maps "completed": a conclusion exists once the
// run has finished. Workflow runs carry no creator.
func workflowRunMessages(run *models.WorkflowRun) (map[string]notify.Message, string) {
	if run == nil {
		return nil, "No workflow run found in the event payload."
	}
	if run.Conclusion != "failure" {
		return nil, "Workflow run is not failed. Conclusion: " + run.Conclusion
	}
	return map[string]notify.Message{
		"completed": {
			Title:   "❗ CI failed",
			Content: fmt.Sprintf("Workflow name: %s, PRs: %s", run.Name, pullRequestLinks(run.PullRequests)),
			URL:     run.HTMLURL,
		},
	}, ""
}

// pullRequestLinks renders refs as comma-separated markdown links.
func pullRequestLinks(refs []models.PullRequestRef) string {
	links := make([]string, 0, len(refs))
	for _, r := range refs {
		title := r.Title
		if title == "" {
			title = fmt.Sprintf("#%d", r.Number)
		}
		if r.HTMLURL == "" {
			links = append(links, title)
			continue
		}
		links = append(links, fmt.Sprintf("[%s](%s)", title, r.HTMLURL))
	}
	return strings.Join(links, ", ")
}

type slogWarner struct{}

func (slogWarner) Warning(msg string) { slog.Warn("event: skipped", "reason", msg) }
