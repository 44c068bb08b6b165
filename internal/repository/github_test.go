package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, mux *http.ServeMux) *GitHubProvider {
	t.Helper()
	return newTestProviderFor(t, mux, config.GitHubConfig{Token: "t"})
}

func newTestProviderFor(t *testing.T, mux *http.ServeMux, cfg config.GitHubConfig) *GitHubProvider {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	g, err := NewGitHub(cfg)
	require.NoError(t, err)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	g.client.BaseURL = base
	return g
}

func TestWorkflowRunEventFillsPullRequestTitles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/actions/runs/42", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{
			"id": 42, "name": "CI", "status": "completed", "conclusion": "failure",
			"html_url": "https://github.com/o/r/actions/runs/42",
			"pull_requests": [{"number": 7}, {"number": 8}],
			"repository": {"html_url": "https://github.com/o/r"}
		}`)
	})
	mux.HandleFunc("/repos/o/r/pulls/7", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"number": 7, "title": "Add cache", "html_url": "https://github.com/o/r/pull/7"}`)
	})
	mux.HandleFunc("/repos/o/r/pulls/8", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	ev, err := newTestProvider(t, mux).WorkflowRunEvent(context.Background(), "o", "r", 42)
	require.NoError(t, err)

	assert.Equal(t, event.KindWorkflowRun, ev.Kind)
	assert.Equal(t, "completed", ev.Action)
	assert.Equal(t, "o/r", ev.Repository)
	require.NotNil(t, ev.WorkflowRun)
	assert.Equal(t, "failure", ev.WorkflowRun.Conclusion)
	require.Len(t, ev.WorkflowRun.PullRequests, 2)
	assert.Equal(t, "Add cache", ev.WorkflowRun.PullRequests[0].Title)
	assert.Empty(t, ev.WorkflowRun.PullRequests[1].Title)
	assert.Equal(t, "https://github.com/o/r/pull/8", ev.WorkflowRun.PullRequests[1].HTMLURL)
}

func TestWorkflowRunEventDerivesLinksFromEnterpriseHost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/actions/runs/5", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id": 5, "name": "CI", "conclusion": "failure", "pull_requests": [{"number": 9, "title": "Fix"}]}`)
	})

	g := newTestProviderFor(t, mux, config.GitHubConfig{Host: "ghe.example.com"})
	ev, err := g.WorkflowRunEvent(context.Background(), "o", "r", 5)
	require.NoError(t, err)

	require.Len(t, ev.WorkflowRun.PullRequests, 1)
	assert.Equal(t, "https://ghe.example.com/o/r/pull/9", ev.WorkflowRun.PullRequests[0].HTMLURL)
}

func TestPullRequestAndIssueEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/pulls/7", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"number": 7, "title": "Add cache", "html_url": "https://github.com/o/r/pull/7", "merged": true, "user": {"login": "alice"}}`)
	})
	mux.HandleFunc("/repos/o/r/issues/3", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"number": 3, "title": "Crash", "html_url": "https://github.com/o/r/issues/3", "user": {"login": "bob"}}`)
	})
	g := newTestProvider(t, mux)

	pr, err := g.PullRequestEvent(context.Background(), "o", "r", 7, "closed")
	require.NoError(t, err)
	assert.Equal(t, "closed", pr.Action)
	require.NotNil(t, pr.PullRequest)
	assert.True(t, pr.PullRequest.Merged)
	assert.Equal(t, "alice", pr.PullRequest.User)

	is, err := g.IssueEvent(context.Background(), "o", "r", 3, "opened")
	require.NoError(t, err)
	assert.Equal(t, event.KindIssue, is.Kind)
	require.NotNil(t, is.Issue)
	assert.Equal(t, "Crash", is.Issue.Title)
}

func TestEventLookupErrors(t *testing.T) {
	g := newTestProvider(t, http.NewServeMux())

	_, err := g.IssueEvent(context.Background(), "o", "r", 99, "opened")
	assert.ErrorContains(t, err, "getting issue #99 on o/r")
}

func TestNewGitHubEnterprise(t *testing.T) {
	g, err := NewGitHub(config.GitHubConfig{Host: "ghe.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", g.client.BaseURL.String())
}

func TestSplitFullName(t *testing.T) {
	owner, name, err := SplitFullName(" o/r/ ")
	require.NoError(t, err)
	assert.Equal(t, "o", owner)
	assert.Equal(t, "r", name)

	for _, bad := range []string{"", "o", "o/r/x", "/r"} {
		_, _, err := SplitFullName(bad)
		assert.Error(t, err, bad)
	}
}
