package repository

import (
	"context"
	"fmt"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/event"
	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// GitHubProvider implements EventSource for GitHub and GitHub Enterprise.
type GitHubProvider struct {
	client *gogithub.Client
	// webURL is the web root repository links are built from, e.g. https://github.com.
	webURL string
}

// NewGitHub creates a GitHubProvider from the given configuration. An empty
// token gives an unauthenticated client, enough for public repositories.
func NewGitHub(cfg config.GitHubConfig) (*GitHubProvider, error) {
	host := cfg.Host
	if host == "" {
		host = "github.com"
	}
	client := gogithub.NewClient(nil)
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = gogithub.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	// Support GitHub Enterprise by overriding the base URL.
	if host != "github.com" {
		base := fmt.Sprintf("https://%s/api/v3/", host)
		upload := fmt.Sprintf("https://%s/api/uploads/", host)
		var err error
		client, err = client.WithEnterpriseURLs(base, upload)
		if err != nil {
			return nil, fmt.Errorf("configuring GitHub enterprise URLs: %w", err)
		}
	}

	return &GitHubProvider{client: client, webURL: "https://" + host}, nil
}

func (g *GitHubProvider) Name() string { return "github" }

func (g *GitHubProvider) WorkflowRunEvent(ctx context.Context, owner, name string, id int64) (event.Event, error) {
	run, _, err := g.client.Actions.GetWorkflowRunByID(ctx, owner, name, id)
	if err != nil {
		return event.Event{}, fmt.Errorf("getting workflow run %d on %s/%s: %w", id, owner, name, err)
	}
	repoURL := run.GetRepository().GetHTMLURL()
	if repoURL == "" {
		repoURL = fmt.Sprintf("%s/%s/%s", g.webURL, owner, name)
	}
	wr := event.FromWorkflowRun(run, repoURL)

	// The API only returns PR numbers for a run; fill in titles so the
	// message reads like the webhook-driven one.
	for i, ref := range wr.PullRequests {
		if ref.Title != "" || ref.Number == 0 {
			continue
		}
		pr, _, err := g.client.PullRequests.Get(ctx, owner, name, ref.Number)
		if err != nil {
			continue
		}
		wr.PullRequests[i].Title = pr.GetTitle()
		if pr.GetHTMLURL() != "" {
			wr.PullRequests[i].HTMLURL = pr.GetHTMLURL()
		}
	}

	return event.Event{
		Kind:        event.KindWorkflowRun,
		Action:      "completed",
		Repository:  owner + "/" + name,
		WorkflowRun: wr,
	}, nil
}

func (g *GitHubProvider) PullRequestEvent(ctx context.Context, owner, name string, number int, action string) (event.Event, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return event.Event{}, fmt.Errorf("getting pull request #%d on %s/%s: %w", number, owner, name, err)
	}
	return event.Event{
		Kind:        event.KindPullRequest,
		Action:      action,
		Repository:  owner + "/" + name,
		PullRequest: event.FromPullRequest(pr),
	}, nil
}

func (g *GitHubProvider) IssueEvent(ctx context.Context, owner, name string, number int, action string) (event.Event, error) {
	is, _, err := g.client.Issues.Get(ctx, owner, name, number)
	if err != nil {
		return event.Event{}, fmt.Errorf("getting issue #%d on %s/%s: %w", number, owner, name, err)
	}
	return event.Event{
		Kind:       event.KindIssue,
		Action:     action,
		Repository: owner + "/" + name,
		Issue:      event.FromIssue(is),
	}, nil
}
