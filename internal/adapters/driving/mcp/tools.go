package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// EmptyInput is the input schema for tools that take no arguments.
type EmptyInput struct{}

// RepoInput is the input schema for subscribe and unsubscribe.
type RepoInput struct {
	Repo string `json:"repo" jsonschema:"repository as owner/name or a github.com URL"`
}

// RepoOutput is the output schema for subscribe and unsubscribe.
type RepoOutput struct {
	Repo string `json:"repo"`
}

// SubscriptionsOutput is the output schema for list_subscriptions.
type SubscriptionsOutput struct {
	Repos []string `json:"repos"`
	Count int      `json:"count"`
}

// ReportInput is the input schema for generate_report.
type ReportInput struct {
	Repos     []string `json:"repos,omitempty" jsonschema:"repositories as owner/name; omit for every subscription"`
	Since     string   `json:"since,omitempty" jsonschema:"window start as YYYY-MM-DD or RFC3339"`
	Until     string   `json:"until,omitempty" jsonschema:"window end as YYYY-MM-DD (inclusive day) or RFC3339"`
	Summarize bool     `json:"summarize,omitempty" jsonschema:"append an LLM summary when one is configured"`
	Combined  bool     `json:"combined,omitempty" jsonschema:"render every repository into one report"`
}

// ReportOutput is the output schema for generate_report.
type ReportOutput struct {
	Reports []ReportResult `json:"reports"`
}

// ReportResult is one rendered report.
type ReportResult struct {
	Repo    string `json:"repo,omitempty"`
	Window  string `json:"window"`
	Content string `json:"content"`
	Summary bool   `json:"summary"`
}

// ReportFilesOutput is the output schema for list_reports.
type ReportFilesOutput struct {
	Files []ReportFileOutput `json:"files"`
	Count int                `json:"count"`
}

// ReportFileOutput describes one exported report.
type ReportFileOutput struct {
	Name      string `json:"name"`
	Modified  string `json:"modified"`
	Size      int64  `json:"size"`
	IsSummary bool   `json:"is_summary"`
}

// ReadReportInput is the input schema for read_report.
type ReadReportInput struct {
	Name string `json:"name" jsonschema:"file name as returned by list_reports"`
}

// ReadReportOutput is the output schema for read_report.
type ReadReportOutput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_subscriptions",
		Description: "List the GitHub repositories Sentinel is watching",
	}, s.handleListSubscriptions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "subscribe",
		Description: "Start watching a GitHub repository",
	}, s.handleSubscribe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "unsubscribe",
		Description: "Stop watching a GitHub repository",
	}, s.handleUnsubscribe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_report",
		Description: "Fetch releases, commits, issues and pull requests and render a Markdown report",
	}, s.handleGenerateReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reports",
		Description: "List exported report files, newest first",
	}, s.handleListReports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_report",
		Description: "Read an exported report file",
	}, s.handleReadReport)
}

func (s *Server) handleListSubscriptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, SubscriptionsOutput, error) {
	repos, err := s.ports.Subscriptions.List(ctx)
	if err != nil {
		return nil, SubscriptionsOutput{}, err
	}

	output := SubscriptionsOutput{Repos: make([]string, len(repos)), Count: len(repos)}
	for i, repo := range repos {
		output.Repos[i] = repo.String()
	}
	return nil, output, nil
}

func (s *Server) handleSubscribe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepoInput,
) (*mcp.CallToolResult, RepoOutput, error) {
	repo, err := s.ports.Subscriptions.Subscribe(ctx, input.Repo)
	if err != nil {
		return nil, RepoOutput{}, err
	}
	return nil, RepoOutput{Repo: repo.String()}, nil
}

func (s *Server) handleUnsubscribe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepoInput,
) (*mcp.CallToolResult, RepoOutput, error) {
	repo, err := s.ports.Subscriptions.Unsubscribe(ctx, input.Repo)
	if err != nil {
		return nil, RepoOutput{}, err
	}
	return nil, RepoOutput{Repo: repo.String()}, nil
}

func (s *Server) handleGenerateReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	repos, err := domain.ParseRepoIDs(input.Repos)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	window, err := domain.ParseWindow(input.Since, input.Until)
	if err != nil {
		return nil, ReportOutput{}, err
	}

	reports, err := s.ports.Reports.Generate(ctx, driving.ReportRequest{
		Repos:     repos,
		Window:    window,
		Summarize: input.Summarize,
		Combined:  input.Combined,
	})
	if err != nil {
		return nil, ReportOutput{}, err
	}

	output := ReportOutput{Reports: make([]ReportResult, len(reports))}
	for i, r := range reports {
		output.Reports[i] = ReportResult{
			Repo:    r.Repo.String(),
			Window:  r.Window.String(),
			Content: r.Content(),
			Summary: r.HasSummary(),
		}
	}
	return nil, output, nil
}

func (s *Server) handleListReports(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ReportFilesOutput, error) {
	files, err := s.ports.Reports.ListReports()
	if err != nil {
		return nil, ReportFilesOutput{}, err
	}
	output := ReportFilesOutput{Files: make([]ReportFileOutput, len(files)), Count: len(files)}
	for i, f := range files {
		output.Files[i] = ReportFileOutput{
			Name:      f.Name,
			Modified:  f.ModTime.UTC().Format(time.RFC3339),
			Size:      f.Size,
			IsSummary: f.IsSummary,
		}
	}
	return nil, output, nil
}

func (s *Server) handleReadReport(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ReadReportInput,
) (*mcp.CallToolResult, ReadReportOutput, error) {
	content, err := s.ports.Reports.ReadReport(input.Name)
	if err != nil {
		return nil, ReadReportOutput{}, err
	}
	return nil, ReadReportOutput{Name: input.Name, Content: content}, nil
}
