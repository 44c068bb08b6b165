package cmd

import (
	"fmt"
	"os"

	"github.com/CosmoTheDev/eventsync/internal/actions"
	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/event"
	"github.com/CosmoTheDev/eventsync/internal/repository"
	"github.com/spf13/cobra"
)

var (
	replayRepo   string
	replayRunID  int64
	replayPR     int
	replayIssue  int
	replayAction string
	replayDryRun bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-send the notification for a past workflow run, pull request or issue",
	Long: `Fetches a workflow run, pull request or issue from the GitHub API,
rebuilds the event it would have produced and dispatches it.

Examples:
  eventsync replay --repo octo/app --run 123456789
  eventsync replay --repo octo/app --pr 42 --action closed
  eventsync replay --repo octo/app --issue 7 --dry-run`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayRepo, "repo", "", "Repository as owner/name (required)")
	replayCmd.Flags().Int64Var(&replayRunID, "run", 0, "Workflow run ID")
	replayCmd.Flags().IntVar(&replayPR, "pr", 0, "Pull request number")
	replayCmd.Flags().IntVar(&replayIssue, "issue", 0, "Issue number")
	replayCmd.Flags().StringVar(&replayAction, "action", "opened", "Action to replay for --pr/--issue (opened|closed|reopened)")
	replayCmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "Print the card instead of posting it")
	_ = replayCmd.MarkFlagRequired("repo")
	replayCmd.MarkFlagsMutuallyExclusive("run", "pr", "issue")
	replayCmd.MarkFlagsOneRequired("run", "pr", "issue")
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	owner, name, err := repository.SplitFullName(replayRepo)
	if err != nil {
		return err
	}

	gh, err := repository.NewGitHub(cfg.GitHub)
	if err != nil {
		return err
	}

	var ev event.Event
	switch {
	case replayRunID != 0:
		ev, err = gh.WorkflowRunEvent(ctx, owner, name, replayRunID)
	case replayPR != 0:
		ev, err = gh.PullRequestEvent(ctx, owner, name, replayPR, replayAction)
	default:
		ev, err = gh.IssueEvent(ctx, owner, name, replayIssue, replayAction)
	}
	if err != nil {
		return err
	}

	reporter := actions.NewReporter(os.Stdout)
	platform, err := newPlatform(cfg, reporter, replayDryRun)
	if err != nil {
		return err
	}

	out := event.Handle(ctx, ev, platform, reporter)
	fmt.Printf("%s: %s\n", out.Status, describeOutcome(out))
	if out.Status == event.StatusFailed {
		return errNotifyFailed
	}
	return nil
}

func describeOutcome(out event.Outcome) string {
	if out.Message != nil && out.Status == event.StatusSent {
		return out.Message.Title
	}
	return out.Reason
}
