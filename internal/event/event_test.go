package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePullRequest(t *testing.T) {
	payload := []byte(`{
		"action": "closed",
		"number": 5,
		"pull_request": {
			"number": 5,
			"title": "Add feature",
			"html_url": "https://github.com/o/r/pull/5",
			"merged": true,
			"user": {"login": "alice"}
		},
		"repository": {"full_name": "o/r", "html_url": "https://github.com/o/r"}
	}`)

	ev, err := Parse("pull_request", payload)
	require.NoError(t, err)

	assert.Equal(t, KindPullRequest, ev.Kind)
	assert.Equal(t, "closed", ev.Action)
	assert.Equal(t, "o/r", ev.Repository)
	require.NotNil(t, ev.PullRequest)
	assert.Equal(t, "Add feature", ev.PullRequest.Title)
	assert.Equal(t, "https://github.com/o/r/pull/5", ev.PullRequest.HTMLURL)
	assert.Equal(t, "alice", ev.PullRequest.User)
	assert.True(t, ev.PullRequest.Merged)
}

func TestParseIssue(t *testing.T) {
	payload := []byte(`{
		"action": "opened",
		"issue": {"number": 3, "title": "Crash", "html_url": "https://github.com/o/r/issues/3", "user": {"login": "bob"}}
	}`)

	ev, err := Parse("issues", payload)
	require.NoError(t, err)

	assert.Equal(t, KindIssue, ev.Kind)
	require.NotNil(t, ev.Issue)
	assert.Equal(t, "Crash", ev.Issue.Title)
	assert.Equal(t, "bob", ev.Issue.User)
}

func TestParseWorkflowRunDerivesPullRequestLinks(t *testing.T) {
	payload := []byte(`{
		"action": "completed",
		"workflow_run": {
			"id": 42,
			"name": "CI",
			"html_url": "https://github.com/o/r/actions/runs/42",
			"status": "completed",
			"conclusion": "failure",
			"pull_requests": [{"number": 7, "url": "https://api.github.com/repos/o/r/pulls/7"}],
			"repository": {"full_name": "o/r", "html_url": "https://github.com/o/r"}
		},
		"repository": {"full_name": "o/r", "html_url": "https://github.com/o/r"}
	}`)

	ev, err := Parse("workflow_run", payload)
	require.NoError(t, err)

	assert.Equal(t, KindWorkflowRun, ev.Kind)
	require.NotNil(t, ev.WorkflowRun)
	assert.Equal(t, int64(42), ev.WorkflowRun.ID)
	assert.Equal(t, "failure", ev.WorkflowRun.Conclusion)
	require.Len(t, ev.WorkflowRun.PullRequests, 1)
	assert.Equal(t, 7, ev.WorkflowRun.PullRequests[0].Number)
	assert.Equal(t, "https://github.com/o/r/pull/7", ev.WorkflowRun.PullRequests[0].HTMLURL)
}

func TestParseMissingSubjectLeavesNil(t *testing.T) {
	ev, err := Parse("pull_request", []byte(`{"action": "opened"}`))
	require.NoError(t, err)
	assert.Nil(t, ev.PullRequest)
	assert.Equal(t, "opened", ev.Action)
}

func TestParseUnsupportedEvent(t *testing.T) {
	_, err := Parse("push", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnsupportedEvent)
}

func TestParseMalformedPayload(t *testing.T) {
	_, err := Parse("issues", []byte(`{not json`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedEvent)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "pull request", KindPullRequest.Label())
	assert.Equal(t, "issue", KindIssue.Label())
	assert.Equal(t, "workflow run", KindWorkflowRun.Label())
	assert.Equal(t, "push", Kind("push").Label())
}
