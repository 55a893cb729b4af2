// Package cli provides the cobra command tree for sentinel.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
	"github.com/custodia-labs/sentinel/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	subscriptionService driving.SubscriptionService
	reportService       driving.ReportService
	scheduler           driving.Scheduler
	settingsService     driving.SettingsService
	appConfig           *domain.AppConfig
	llmCheck            func(ctx context.Context) error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Watch GitHub repositories and report their activity",
	Long: `Sentinel polls subscribed GitHub repositories for releases, commits,
issues and pull requests, renders Markdown reports and optionally adds an
LLM-written summary.

Reports can be printed, exported to files, emailed, browsed in the web
dashboard or the terminal UI, or served to AI assistants over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print pipeline diagnostics to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetSubscriptionService sets the service used by subscription commands.
func SetSubscriptionService(s driving.SubscriptionService) {
	subscriptionService = s
}

// SetReportService sets the service used by report commands.
func SetReportService(s driving.ReportService) {
	reportService = s
}

// SetScheduler sets the scheduler used by schedule and history.
func SetScheduler(s driving.Scheduler) {
	scheduler = s
}

// SetSettingsService sets the service used by settings commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetAppConfig sets the effective configuration loaded at startup.
func SetAppConfig(cfg *domain.AppConfig) {
	appConfig = cfg
}

// SetLLMCheck sets the connectivity probe used by settings check.
func SetLLMCheck(check func(ctx context.Context) error) {
	llmCheck = check
}

// requireToken fails commands that fetch from GitHub when no token is set.
func requireToken(_ *cobra.Command, _ []string) error {
	if appConfig == nil || appConfig.GitHub.Token == "" {
		return fmt.Errorf("%w: set GITHUB_TOKEN or run 'sentinel settings set-token'", domain.ErrTokenMissing)
	}
	return nil
}
