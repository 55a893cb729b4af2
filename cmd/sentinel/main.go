// Command sentinel watches GitHub repositories and reports their activity.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/sentinel/internal/adapters/driven/ai"
	"github.com/custodia-labs/sentinel/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sentinel/internal/adapters/driven/notify/email"
	"github.com/custodia-labs/sentinel/internal/adapters/driven/storage/reports"
	"github.com/custodia-labs/sentinel/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/cli"
	"github.com/custodia-labs/sentinel/internal/connectors/github"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// envConfigDir overrides the XDG config directory.
const envConfigDir = "SENTINEL_CONFIG_DIR"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cli.SetVersion(version)

	configDir := os.Getenv(envConfigDir)
	if configDir == "" {
		configDir = file.DefaultConfigDir()
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		return 1
	}

	settings := services.NewSettingsService(configStore, services.Dirs{
		DataDir:   file.DefaultDataDir(),
		ExportDir: file.DefaultExportDir(),
	})
	cli.SetSettingsService(settings)

	// A broken config still lets 'settings' repair it.
	cfg, err := settings.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (fix with 'sentinel settings set')\n", err)
		return execute(ctx)
	}
	cli.SetAppConfig(cfg)

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		return 1
	}
	defer store.Close()

	reportStore, err := reports.NewStore(cfg.Report.ExportDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error preparing report directory: %v\n", err)
		return 1
	}

	var fetcher driven.UpdateFetcher
	if cfg.GitHub.Token != "" {
		client, err := github.NewClient(ctx, cfg.GitHub.Token, github.Options{
			BaseURL:           cfg.GitHub.BaseURL,
			PerPage:           cfg.GitHub.ItemsPerPage,
			MaxPages:          cfg.GitHub.MaxPages,
			RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating GitHub client: %v\n", err)
			return 1
		}
		fetcher = client
	}

	prompts := newPromptStore(ctx, configDir)

	llm, err := ai.CreateLLMService(&cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: summaries disabled: %v\n", err)
	}
	if llm != nil {
		defer llm.Close()
	}

	var notifier driven.Notifier
	if cfg.Email.IsConfigured() {
		notifier = email.NewNotifier(cfg.Email)
	}

	summary := services.NewSummaryAppender(llm, prompts, cfg.LLM, cfg.Report.Language)
	subscriptions := services.NewSubscriptionService(store.SubscriptionStore())
	reportService := services.NewReportService(
		store.SubscriptionStore(), fetcher, summary, reportStore, notifier,
		services.ReportOptions{SummarizeCycles: cfg.Scheduler.Summarize},
	)
	scheduler := services.NewScheduler(cfg.Scheduler, reportService, store.SchedulerStore())

	llmSettings := cfg.LLM
	cli.SetLLMCheck(func(ctx context.Context) error {
		svc, err := ai.CreateAndValidateLLMService(ctx, &llmSettings)
		if svc != nil {
			svc.Close()
		}
		return err
	})
	cli.SetSubscriptionService(subscriptions)
	cli.SetReportService(reportService)
	cli.SetScheduler(scheduler)

	return execute(ctx)
}

// newPromptStore returns the file prompt store and keeps it in sync with
// edits under <configDir>/prompts for the life of ctx.
func newPromptStore(ctx context.Context, configDir string) *file.PromptStore {
	dir := file.DefaultPromptDir(configDir)
	prompts := file.NewPromptStore(dir)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return prompts
	}
	watcher, err := file.NewPromptWatcher(prompts, dir)
	if err != nil {
		return prompts
	}
	go watcher.Run(ctx)
	return prompts
}

func execute(ctx context.Context) int {
	if err := cli.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
