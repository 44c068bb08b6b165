package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterWritesWorkflowCommands(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Warning("No issue found in the event payload.")
	assert.False(t, r.Failed())
	r.SetFailed("Failed to send message to Lark: boom")

	assert.True(t, r.Failed())
	assert.Equal(t, 1, r.Warnings())
	assert.Equal(t,
		"::warning::No issue found in the event payload.\n::error::Failed to send message to Lark: boom\n",
		buf.String())
}

func TestEscapeData(t *testing.T) {
	assert.Equal(t, "100%25 done%0D%0Anext", EscapeData("100% done\r\nnext"))
	assert.Equal(t, "%2525", EscapeData("%25"))
}

func TestContextFromEnv(t *testing.T) {
	env := map[string]string{
		"GITHUB_EVENT_NAME": "workflow_run",
		"GITHUB_EVENT_PATH": "/tmp/event.json",
		"GITHUB_REPOSITORY": "o/r",
		"GITHUB_RUN_ID":     "99",
		"GITHUB_OUTPUT":     "/tmp/out",
		"GITHUB_ACTIONS":    "true",
	}
	c := ContextFromEnv(func(k string) string { return env[k] })

	assert.Equal(t, Context{
		EventName:  "workflow_run",
		EventPath:  "/tmp/event.json",
		Repository: "o/r",
		RunID:      "99",
		OutputPath: "/tmp/out",
		InActions:  true,
	}, c)
}

func TestReadPayload(t *testing.T) {
	_, err := Context{}.ReadPayload()
	assert.ErrorIs(t, err, ErrNoEvent)

	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"action":"opened"}`), 0o600))

	b, err := Context{EventName: "issues", EventPath: path}.ReadPayload()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"opened"}`, string(b))
}

func TestSetOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")

	require.NoError(t, SetOutput(path, "outcome", "sent"))
	require.NoError(t, SetOutput(path, "reason", "line1\nline2"))
	require.NoError(t, SetOutput("", "ignored", "x"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "outcome=sent\nreason<<EVENTSYNC_EOF\nline1\nline2\nEVENTSYNC_EOF\n", string(b))
}
