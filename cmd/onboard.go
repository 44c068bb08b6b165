package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Interactive setup wizard for eventsync",
	Long: `Walks you through configuring eventsync:
  - Lark custom-bot webhook (and signing secret, if enabled on the bot)
  - GitHub login to Lark open ID mentions file
  - GitHub credentials used by 'eventsync replay'
  - Webhook secret used by 'eventsync serve'

Inside GitHub Actions you normally skip this and pass everything through
EVENTSYNC_* environment variables instead.`,
	RunE: runOnboard,
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7C3AED")).
	MarginBottom(1)

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#10B981"))

var dimStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#6B7280"))

func runOnboard(cmd *cobra.Command, args []string) error {
	fmt.Println()
	fmt.Println(headerStyle.Render("  eventsync — GitHub events to Lark"))

	// Load existing config or start fresh.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		cfg = &config.Config{}
	}

	// --- Step 1: Lark ---
	fmt.Println(headerStyle.Render("  Step 1/3 · Lark bot"))
	fmt.Println(dimStyle.Render("  Add a custom bot to the target group chat and copy its webhook URL.\n"))

	larkForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Webhook URL").
				Placeholder("https://open.feishu.cn/open-apis/bot/v2/hook/...").
				Validate(validateWebhookURL).
				Value(&cfg.Lark.WebhookURL),
			huh.NewInput().
				Title("Signing secret (optional)").
				Description("Only needed when signature verification is enabled on the bot.").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Lark.Secret),
			huh.NewInput().
				Title("Mentions file (optional)").
				Description("YAML file mapping GitHub logins to Lark open IDs, e.g. 'octocat: ou_xxx'.").
				Placeholder("~/.eventsync/mentions.yaml").
				Validate(validateMentionsFile).
				Value(&cfg.Lark.MentionsFile),
		),
	)
	if err := larkForm.Run(); err != nil {
		return err
	}

	// --- Step 2: GitHub ---
	fmt.Println(headerStyle.Render("\n  Step 2/3 · GitHub Credentials (optional)"))
	if cfg.GitHub.Host == "" {
		cfg.GitHub.Host = "github.com"
	}
	ghForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub token").
				Description("Read access is enough. Used by 'eventsync replay' only.").
				Placeholder("ghp_...").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.GitHub.Token),
			huh.NewInput().
				Title("GitHub host").
				Description("Use 'github.com' for public GitHub or your enterprise hostname").
				Value(&cfg.GitHub.Host),
		),
	)
	if err := ghForm.Run(); err != nil {
		return err
	}

	// --- Step 3: Gateway ---
	fmt.Println(headerStyle.Render("\n  Step 3/3 · Webhook receiver (optional)"))
	if cfg.Gateway.Addr == "" {
		cfg.Gateway.Addr = ":8080"
	}
	gwForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen address").
				Value(&cfg.Gateway.Addr),
			huh.NewInput().
				Title("GitHub webhook secret").
				Description("Must match the secret configured on the GitHub webhook.").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Gateway.WebhookSecret),
		),
	)
	if err := gwForm.Run(); err != nil {
		return err
	}

	// Mentions from the file are re-read on every run; only inline ones are saved.
	cfg.Lark.Mentions = cfg.Lark.InlineMentions()

	cfgPath, err := config.ConfigPath(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Save(cfg, cfgPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Println(successStyle.Render("\n  Saved " + cfgPath))
	fmt.Println(dimStyle.Render("  Run 'eventsync doctor --ping' to send a test card."))
	return nil
}

func validateWebhookURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("webhook URL is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return errors.New("enter a full http(s) URL")
	}
	return nil
}

func validateMentionsFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "~/") {
		return nil
	}
	_, err := config.LoadMentions(s)
	return err
}
