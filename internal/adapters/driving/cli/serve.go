package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/web"
	"github.com/custodia-labs/sentinel/internal/core/domain"
)

var (
	serveAddr     string
	serveSchedule bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the web dashboard and JSON API.

The dashboard lists subscriptions, scheduler history and exported reports.
The API lives under /api:

  GET    /api/subscriptions
  POST   /api/subscriptions            {"repo": "owner/name"}
  DELETE /api/subscriptions/{owner}/{name}
  GET    /api/reports
  POST   /api/reports                  {"repos": [...], "since": "...", "export": true}
  GET    /api/reports/{name}
  GET    /api/scheduler

Use --schedule to run the report scheduler in the same process.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default web.addr)")
	serveCmd.Flags().BoolVar(&serveSchedule, "schedule", false, "Also run the report scheduler")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if subscriptionService == nil || reportService == nil {
		return errors.New("services not configured")
	}

	addr := serveAddr
	if addr == "" && appConfig != nil {
		addr = appConfig.Web.Addr
	}
	if addr == "" {
		addr = domain.DefaultWebAddr
	}

	server, err := web.NewServer(web.Ports{
		Subscriptions: subscriptionService,
		Reports:       reportService,
		Scheduler:     scheduler,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveSchedule {
		if err := requireToken(cmd, nil); err != nil {
			return err
		}
		if scheduler == nil {
			return errors.New("scheduler not configured")
		}
		go func() {
			if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(cmd.ErrOrStderr(), "scheduler stopped: %v\n", err)
			}
		}()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "scheduler stop error: %v\n", err)
			}
		}()
	}

	cmd.Printf("Dashboard listening on http://localhost%s\n", addr)
	return server.ListenAndServe(ctx, addr)
}
