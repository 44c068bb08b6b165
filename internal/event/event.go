// Package event turns GitHub webhook events into chat notifications.
//
// An Event is a tagged union over the three supported kinds. Handle selects
// the message table for the event's kind, looks up the event's action and
// sends at most one message through a notify.Platform. Malformed payloads,
// unmapped actions and successful CI runs are skipped with a warning; none of
// them is an error.
package event

import (
	"errors"
	"fmt"

	"github.com/CosmoTheDev/eventsync/models"
	gogithub "github.com/google/go-github/v68/github"
)

// Kind is the GitHub event name (the X-GitHub-Event header / GITHUB_EVENT_NAME).
type Kind string

const (
	KindPullRequest Kind = "pull_request"
	KindIssue       Kind = "issues"
	KindWorkflowRun Kind = "workflow_run"
)

// Label is the human-readable name used in log and warning text.
func (k Kind) Label() string {
	switch k {
	case KindPullRequest:
		return "pull request"
	case KindIssue:
		return "issue"
	case KindWorkflowRun:
		return "workflow run"
	default:
		return string(k)
	}
}

// ErrUnsupportedEvent is returned by Parse for event names eventsync does not handle.
var ErrUnsupportedEvent = errors.New("unsupported event")

// Event is one inbound event. Exactly one subject matching Kind is meaningful;
// it is nil when the payload did not carry one.
type Event struct {
	Kind       Kind
	Action     string
	Repository string // owner/name, informational

	PullRequest *models.PullRequest
	Issue       *models.Issue
	WorkflowRun *models.WorkflowRun
}

// Parse decodes a webhook payload for the named event.
func Parse(name string, payload []byte) (Event, error) {
	switch Kind(name) {
	case KindPullRequest, KindIssue, KindWorkflowRun:
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnsupportedEvent, name)
	}

	raw, err := gogithub.ParseWebHook(name, payload)
	if err != nil {
		return Event{}, fmt.Errorf("decoding %s payload: %w", name, err)
	}

	switch e := raw.(type) {
	case *gogithub.PullRequestEvent:
		return Event{
			Kind:        KindPullRequest,
			Action:      e.GetAction(),
			Repository:  e.GetRepo().GetFullName(),
			PullRequest: FromPullRequest(e.PullRequest),
		}, nil
	case *gogithub.IssuesEvent:
		return Event{
			Kind:       KindIssue,
			Action:     e.GetAction(),
			Repository: e.GetRepo().GetFullName(),
			Issue:      FromIssue(e.Issue),
		}, nil
	case *gogithub.WorkflowRunEvent:
		repoURL := e.GetWorkflowRun().GetRepository().GetHTMLURL()
		if repoURL == "" {
			repoURL = e.GetRepo().GetHTMLURL()
		}
		return Event{
			Kind:        KindWorkflowRun,
			Action:      e.GetAction(),
			Repository:  e.GetRepo().GetFullName(),
			WorkflowRun: FromWorkflowRun(e.WorkflowRun, repoURL),
		}, nil
	default:
		return Event{}, fmt.Errorf("%w: %q decoded as %T", ErrUnsupportedEvent, name, raw)
	}
}

// FromPullRequest converts a go-github pull request. A nil input yields nil.
func FromPullRequest(pr *gogithub.PullRequest) *models.PullRequest {
	if pr == nil {
		return nil
	}
	return &models.PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		HTMLURL: pr.GetHTMLURL(),
		User:    pr.GetUser().GetLogin(),
		Merged:  pr.GetMerged(),
	}
}

// FromIssue converts a go-github issue. A nil input yields nil.
func FromIssue(is *gogithub.Issue) *models.Issue {
	if is == nil {
		return nil
	}
	return &models.Issue{
		Number:  is.GetNumber(),
		Title:   is.GetTitle(),
		HTMLURL: is.GetHTMLURL(),
		User:    is.GetUser().GetLogin(),
	}
}

// FromWorkflowRun converts a go-github workflow run. repoURL is the
// repository's web URL, used to build links for associated pull requests
// whose payload entry has no html_url. A nil input yields nil.
func FromWorkflowRun(run *gogithub.WorkflowRun, repoURL string) *models.WorkflowRun {
	if run == nil {
		return nil
	}
	out := &models.WorkflowRun{
		ID:         run.GetID(),
		Name:       run.GetName(),
		HTMLURL:    run.GetHTMLURL(),
		Status:     run.GetStatus(),
		Conclusion: run.GetConclusion(),
	}
	for _, pr := range run.PullRequests {
		if pr == nil {
			continue
		}
		ref := models.PullRequestRef{
			Number:  pr.GetNumber(),
			Title:   pr.GetTitle(),
			HTMLURL: pr.GetHTMLURL(),
		}
		if ref.HTMLURL == "" && repoURL != "" && ref.Number > 0 {
			ref.HTMLURL = fmt.Sprintf("%s/pull/%d", repoURL, ref.Number)
		}
		out.PullRequests = append(out.PullRequests, ref)
	}
	return out
}
