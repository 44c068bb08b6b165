package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage eventsync configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration (secrets redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		redact(cfg)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.ConfigPath(cfgFile)
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.ConfigPath(cfgFile)
		if err != nil {
			return err
		}
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "nano"
		}
		fmt.Printf("Opening %s with %s...\n", p, editor)
		c := exec.Command(editor, p) // #nosec G204 -- editor is from $EDITOR env var, intentional user-controlled binary
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd, configEditCmd)
}

// redact masks credentials in place. The Lark webhook URL embeds the bot
// token in its path, so only scheme and host are kept.
func redact(cfg *config.Config) {
	if cfg.Lark.WebhookURL != "" {
		if u, err := url.Parse(cfg.Lark.WebhookURL); err == nil && u.Host != "" {
			cfg.Lark.WebhookURL = u.Scheme + "://" + u.Host + "/***"
		} else {
			cfg.Lark.WebhookURL = "***"
		}
	}
	if cfg.Lark.Secret != "" {
		cfg.Lark.Secret = "***"
	}
	if cfg.GitHub.Token != "" {
		cfg.GitHub.Token = "ghp-***"
	}
	if cfg.Gateway.WebhookSecret != "" {
		cfg.Gateway.WebhookSecret = "***"
	}
}
