package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui"
)

var tuiSchedule bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Sentinel.

The TUI lists subscriptions, generates live reports, browses exported
reports and shows the effective settings.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / generate report
  a, d     - Add / remove subscription
  s        - Save the open report
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiSchedule, "schedule", false, "Run the report scheduler in the background")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(subscriptionService, reportService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// TUI is long-running, so it can host the scheduler.
	if tuiSchedule && scheduler != nil {
		if err := requireToken(cmd, nil); err != nil {
			return err
		}
		schedulerCtx, schedulerCancel := context.WithCancel(cmd.Context())
		defer schedulerCancel()

		go func() {
			if err := scheduler.Start(schedulerCtx); err != nil && schedulerCtx.Err() == nil {
				// Scheduler errors shouldn't block the TUI.
				fmt.Fprintf(os.Stderr, "scheduler stopped: %v\n", err)
			}
		}()

		defer func() {
			if err := scheduler.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "scheduler stop error: %v\n", err)
			}
		}()
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
