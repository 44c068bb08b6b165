package cmd

import (
	"errors"
	"os"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/notify"
)

var errNoWebhook = errors.New("lark webhook URL is not configured (set lark.webhook_url or EVENTSYNC_LARK_WEBHOOK_URL, or use --dry-run)")

// newPlatform returns the Lark channel, or a console channel printing the
// card to stdout when dryRun is set.
func newPlatform(cfg *config.Config, reporter notify.FailureReporter, dryRun bool) (notify.Platform, error) {
	if dryRun {
		return notify.NewConsole(os.Stdout, cfg.Lark.Mentions, reporter), nil
	}
	lark := notify.NewLark(cfg.Lark, reporter)
	if !lark.IsConfigured() {
		return nil, errNoWebhook
	}
	return lark, nil
}
