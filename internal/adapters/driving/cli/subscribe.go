package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <owner/name>...",
	Short: "Watch one or more repositories",
	Long: `Add repositories to the subscription list. Each argument is either
owner/name or a github.com URL.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubscribe,
}

var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <owner/name>...",
	Short: "Stop watching one or more repositories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUnsubscribe,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List subscribed repositories",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(unsubscribeCmd)
	rootCmd.AddCommand(listCmd)
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}

	var errs []error
	for _, raw := range args {
		repo, err := subscriptionService.Subscribe(cmd.Context(), raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("subscribe %s: %w", raw, err))
			continue
		}
		cmd.Printf("Subscribed to %s\n", repo)
	}
	return errors.Join(errs...)
}

func runUnsubscribe(cmd *cobra.Command, args []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}

	var errs []error
	for _, raw := range args {
		repo, err := subscriptionService.Unsubscribe(cmd.Context(), raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("unsubscribe %s: %w", raw, err))
			continue
		}
		cmd.Printf("Unsubscribed from %s\n", repo)
	}
	return errors.Join(errs...)
}

func runList(cmd *cobra.Command, _ []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}

	repos, err := subscriptionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}

	if len(repos) == 0 {
		cmd.Println("No subscriptions. Add one with 'sentinel subscribe owner/name'.")
		return nil
	}

	cmd.Printf("Subscriptions (%d):\n", len(repos))
	for _, repo := range repos {
		cmd.Printf("  %s\n", repo)
	}
	return nil
}
