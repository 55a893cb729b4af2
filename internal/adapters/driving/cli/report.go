package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

var (
	fetchSince     string
	fetchUntil     string
	fetchSummarize bool
	fetchCombined  bool

	exportSince     string
	exportUntil     string
	exportRepos     []string
	exportSummarize bool
	exportCombined  bool
	exportNotify    bool

	dailyDate string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [owner/name...]",
	Short: "Print a report for repositories",
	Long: `Fetch releases, commits, issues and pull requests and print the
Markdown report to stdout. Without arguments every subscription is fetched.

Bounds accept YYYY-MM-DD or RFC3339. A date given to --until covers that
whole day.`,
	PreRunE: requireToken,
	RunE:    runFetch,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write reports for a time range to the report directory",
	Long: `Fetch activity between --since and --until and write one Markdown file
per repository (or one combined file with --combined) to the report
directory. With --summarize a sibling file carrying the LLM summary is
written as well.

Examples:
  sentinel export --since 2025-01-01 --until 2025-01-31
  sentinel export --repo golang/go --since 2025-01-01 --summarize`,
	Args:    cobra.NoArgs,
	PreRunE: requireToken,
	RunE:    runExport,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Export summarised reports for one day",
	Long: `Export a summarised report for each subscription covering a single UTC
calendar day. Defaults to today.`,
	Args:    cobra.NoArgs,
	PreRunE: requireToken,
	RunE:    runDaily,
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List exported report files",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print an exported report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSince, "since", "", "Lower bound (YYYY-MM-DD or RFC3339)")
	fetchCmd.Flags().StringVar(&fetchUntil, "until", "", "Upper bound (YYYY-MM-DD or RFC3339)")
	fetchCmd.Flags().BoolVar(&fetchSummarize, "summarize", false, "Append an LLM summary")
	fetchCmd.Flags().BoolVar(&fetchCombined, "combined", false, "Render all repositories in one report")

	exportCmd.Flags().StringVar(&exportSince, "since", "", "Lower bound (YYYY-MM-DD or RFC3339)")
	exportCmd.Flags().StringVar(&exportUntil, "until", "", "Upper bound (YYYY-MM-DD or RFC3339)")
	exportCmd.Flags().StringSliceVarP(&exportRepos, "repo", "r", nil, "Repository to export (repeatable, default all subscriptions)")
	exportCmd.Flags().BoolVar(&exportSummarize, "summarize", false, "Also write a file with an LLM summary")
	exportCmd.Flags().BoolVar(&exportCombined, "combined", false, "Write one file for all repositories")
	exportCmd.Flags().BoolVar(&exportNotify, "notify", false, "Email each report when email is configured")

	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "Day to report (YYYY-MM-DD, default today UTC)")

	reportsCmd.AddCommand(reportsShowCmd)

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	repos, err := domain.ParseRepoIDs(args)
	if err != nil {
		return err
	}
	window, err := domain.ParseWindow(fetchSince, fetchUntil)
	if err != nil {
		return err
	}

	reports, err := reportService.Generate(cmd.Context(), driving.ReportRequest{
		Repos:     repos,
		Window:    window,
		Summarize: fetchSummarize,
		Combined:  fetchCombined,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}

	for i, report := range reports {
		if i > 0 {
			cmd.Println()
		}
		cmd.Print(report.Content())
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	repos, err := domain.ParseRepoIDs(exportRepos)
	if err != nil {
		return err
	}
	window, err := domain.ParseWindow(exportSince, exportUntil)
	if err != nil {
		return err
	}

	saved, err := reportService.Export(cmd.Context(), driving.ReportRequest{
		Repos:     repos,
		Window:    window,
		Summarize: exportSummarize,
		Combined:  exportCombined,
		Notify:    exportNotify,
	})
	printSaved(cmd, saved)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func runDaily(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	day := time.Now().UTC()
	if dailyDate != "" {
		parsed, err := domain.ParseDay(dailyDate)
		if err != nil {
			return err
		}
		day = parsed
	}

	saved, err := reportService.Daily(cmd.Context(), day)
	printSaved(cmd, saved)
	if err != nil {
		return fmt.Errorf("daily report failed: %w", err)
	}
	return nil
}

func printSaved(cmd *cobra.Command, saved []domain.SavedReport) {
	if len(saved) == 0 {
		return
	}
	cmd.Printf("Saved %d report(s):\n", len(saved))
	for _, s := range saved {
		cmd.Printf("  %s\n", s.Path)
		if s.SummaryPath != "" {
			cmd.Printf("  %s\n", s.SummaryPath)
		}
	}
}

func runReportsList(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	files, err := reportService.ListReports()
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	if len(files) == 0 {
		cmd.Println("No exported reports.")
		return nil
	}

	for _, f := range files {
		marker := ""
		if f.IsSummary {
			marker = " (summary)"
		}
		cmd.Printf("%s  %s%s\n", f.ModTime.Local().Format("2006-01-02 15:04"), f.Name, marker)
	}
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	content, err := reportService.ReadReport(args[0])
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	cmd.Print(content)
	return nil
}
