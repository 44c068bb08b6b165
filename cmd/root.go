package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eventsync",
	Short: "Forward GitHub events to Lark and audit monorepo packages",
	Long: `eventsync turns GitHub pull request, issue and failed workflow run
events into Lark chat cards, and checks monorepo packages for required
configuration files.

Get started:
  eventsync onboard    Interactive setup wizard
  eventsync doctor     Verify configuration
  eventsync notify     Handle the current GitHub Actions event
  eventsync serve      Receive GitHub webhooks over HTTP
  eventsync replay     Re-send a notification for a past run, PR or issue
  eventsync audit      Check packages for essential config files`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.eventsync/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose/debug output")

	rootCmd.Version = Version
	rootCmd.AddCommand(
		onboardCmd,
		notifyCmd,
		serveCmd,
		replayCmd,
		auditCmd,
		configCmd,
		doctorCmd,
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Debug("Verbose logging enabled")
	}
}
