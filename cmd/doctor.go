package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/gateway"
	"github.com/CosmoTheDev/eventsync/internal/notify"
	"github.com/CosmoTheDev/eventsync/internal/tui"
	"github.com/spf13/cobra"
)

var doctorPing bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify configuration and connectivity",
	Long: `Checks that the Lark webhook is configured, the mentions file parses,
and GitHub credentials are present for replay.

Use --ping to post a test card to the configured Lark webhook.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorPing, "ping", false,
		"Send a test card to the Lark webhook")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(tui.Title("eventsync doctor"))
	fmt.Println()

	fmt.Print("Config ................... ")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Println(tui.Fail(fmt.Sprintf("FAIL (%s)", err)))
		return nil
	}
	p, _ := config.ConfigPath(cfgFile)
	fmt.Println(tui.OK("OK ") + tui.Dim("("+p+")"))

	allOK := true

	fmt.Print("Lark webhook ............. ")
	lark := notify.NewLark(cfg.Lark, gateway.LogReporter{})
	if !lark.IsConfigured() {
		fmt.Println(tui.Fail("MISSING (run 'eventsync onboard' or set EVENTSYNC_LARK_WEBHOOK_URL)"))
		allOK = false
	} else if cfg.Lark.Secret == "" {
		fmt.Println(tui.OK("OK") + tui.Dim(" (unsigned)"))
	} else {
		fmt.Println(tui.OK("OK") + tui.Dim(" (signed)"))
	}

	fmt.Print("Mentions ................. ")
	fmt.Printf("%d GitHub login(s) mapped\n", len(cfg.Lark.Mentions))

	fmt.Print("GitHub token ............. ")
	if cfg.GitHub.Token == "" {
		fmt.Println(tui.Warn("WARN (not set — replay limited to public repositories)"))
	} else {
		fmt.Printf("OK (%s)\n", cfg.GitHub.Host)
	}

	fmt.Print("Webhook secret ........... ")
	if cfg.Gateway.WebhookSecret == "" {
		fmt.Println(tui.Warn("WARN (not set — 'eventsync serve' accepts unsigned deliveries)"))
	} else {
		fmt.Println(tui.OK("OK"))
	}

	if doctorPing && lark.IsConfigured() {
		fmt.Print("Lark ping ................ ")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := lark.Send(ctx, notify.Message{
			Title:   "eventsync test message",
			Content: "If you can read this, eventsync can reach this chat.",
		})
		if err != nil {
			fmt.Println(tui.Fail(fmt.Sprintf("FAIL (%s)", err)))
			allOK = false
		} else {
			fmt.Println(tui.OK("OK"))
		}
	}

	fmt.Println()
	if allOK {
		fmt.Println(tui.OK("All checks passed — eventsync is ready!"))
	} else {
		fmt.Println(tui.Warn("Some checks failed — run 'eventsync onboard' to fix."))
	}
	return nil
}
