package models

// PullRequest is the subject of a pull_request event.
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	User    string `json:"user"` // login of the author
	Merged  bool   `json:"merged"`
}

// Issue is the subject of an issues event.
type Issue struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	User    string `json:"user"`
}

// WorkflowRun is the subject of a workflow_run event.
type WorkflowRun struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	HTMLURL      string           `json:"html_url"`
	Status       string           `json:"status"`     // queued | in_progress | completed
	Conclusion   string           `json:"conclusion"` // success | failure | cancelled | skipped | ...
	PullRequests []PullRequestRef `json:"pull_requests"`
}

// PullRequestRef is a pull request associated with a workflow run.
// Webhook payloads usually carry only the number, so Title and HTMLURL may be empty.
type PullRequestRef struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}
