package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

var (
	scheduleOnce bool
	historyLimit int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the report scheduler",
	Long: `Run report cycles on the configured interval until interrupted. Each
cycle fetches every subscription, saves a report for each repository with
activity and emails it when email is enabled.

A failed cycle is retried after scheduler.error_backoff instead of the full
scheduler.interval. Use --once to run a single cycle and exit.`,
	Args:    cobra.NoArgs,
	PreRunE: requireToken,
	RunE:    runSchedule,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent scheduler cycles",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleOnce, "once", false, "Run one cycle and exit")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of cycles to show")
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(historyCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if scheduleOnce {
		if reportService == nil {
			return errors.New("report service not configured")
		}
		result, err := reportService.RunCycle(cmd.Context())
		if err != nil {
			return fmt.Errorf("cycle failed: %w", err)
		}
		cmd.Printf("Checked %d repositories, delivered %d report(s)\n",
			result.ReposChecked, result.ReportsDelivered)
		return nil
	}

	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("Scheduler started. Press Ctrl+C to stop.")
	err := scheduler.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cmd.Println("Scheduler stopped.")
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}
	if historyLimit <= 0 {
		return fmt.Errorf("%w: --limit must be positive", domain.ErrInvalidInput)
	}

	results, err := scheduler.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(results) == 0 {
		cmd.Println("No scheduler cycles recorded.")
		return nil
	}

	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "failed: " + r.Error
		}
		cmd.Printf("%s  %8s  repos=%d reports=%d  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration().Round(time.Millisecond), r.ReposChecked, r.ReportsDelivered, status)
	}
	return nil
}
