package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/CosmoTheDev/eventsync/internal/actions"
	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/event"
	"github.com/spf13/cobra"
)

var (
	notifyEventName string
	notifyPayload   string
	notifyDryRun    bool
)

var errNotifyFailed = errors.New("notification failed")

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send a Lark notification for the current GitHub Actions event",
	Long: `Reads the triggering event from the GitHub Actions runner
(GITHUB_EVENT_NAME and GITHUB_EVENT_PATH) and sends one Lark card for it.

Handled events:
  pull_request   opened, closed (merged or not), reopened
  issues         opened, closed, reopened
  workflow_run   completed with conclusion "failure"

Anything else is skipped with a warning annotation. The step fails only when
the payload cannot be read or the message could not be delivered.

Examples:
  eventsync notify
  eventsync notify --event pull_request --payload ./event.json --dry-run`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().StringVar(&notifyEventName, "event", "", "Event name (default: $GITHUB_EVENT_NAME)")
	notifyCmd.Flags().StringVar(&notifyPayload, "payload", "", "Path to the event payload JSON (default: $GITHUB_EVENT_PATH)")
	notifyCmd.Flags().BoolVar(&notifyDryRun, "dry-run", false, "Print the card instead of posting it")
}

func runNotify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ghctx := actions.ContextFromEnv(os.Getenv)
	if notifyEventName != "" {
		ghctx.EventName = notifyEventName
	}
	if notifyPayload != "" {
		ghctx.EventPath = notifyPayload
	}

	reporter := actions.NewReporter(os.Stdout)
	platform, err := newPlatform(cfg, reporter, notifyDryRun)
	if err != nil {
		return err
	}

	payload, err := ghctx.ReadPayload()
	if err != nil {
		return err
	}

	ev, err := event.Parse(ghctx.EventName, payload)
	if err != nil {
		if errors.Is(err, event.ErrUnsupportedEvent) {
			reporter.Warning(fmt.Sprintf("Event %q is not handled by eventsync.", ghctx.EventName))
			setOutcome(ghctx, event.StatusSkipped)
			return nil
		}
		reporter.SetFailed(err.Error())
		setOutcome(ghctx, event.StatusFailed)
		return errNotifyFailed
	}
	if ev.Repository == "" {
		ev.Repository = ghctx.Repository
	}

	out := event.Handle(ctx, ev, platform, reporter)
	setOutcome(ghctx, out.Status)
	if out.Status == event.StatusFailed || reporter.Failed() {
		return errNotifyFailed
	}
	return nil
}

func setOutcome(ghctx actions.Context, status event.Status) {
	if err := actions.SetOutput(ghctx.OutputPath, "outcome", string(status)); err != nil {
		slog.Warn("notify: could not write step output", "error", err)
	}
}
