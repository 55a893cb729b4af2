package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Sentinel resources.
	uriScheme = "sentinel://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "subscriptions",
		Name:        "subscriptions",
		Description: "Repositories being watched",
		MIMEType:    "application/json",
	}, s.handleSubscriptionsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "Exported report files, newest first",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{name}",
		Name:        "report-content",
		Description: "Markdown content of an exported report",
		MIMEType:    "text/markdown",
	}, s.handleReportContentResource)
}

// handleSubscriptionsResource returns the subscribed repositories.
func (s *Server) handleSubscriptionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	repos, err := s.ports.Subscriptions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	names := make([]string, len(repos))
	for i, repo := range repos {
		names[i] = repo.String()
	}
	return jsonResource(req.Params.URI, names)
}

// handleReportsResource returns exported report files.
func (s *Server) handleReportsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	files, err := s.ports.Reports.ListReports()
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	if files == nil {
		files = []domain.ReportFile{}
	}
	return jsonResource(req.Params.URI, files)
}

// handleReportContentResource returns the content of one exported report.
func (s *Server) handleReportContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractReportName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Reports.ReadReport(name)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractReportName extracts the file name from a URI like sentinel://reports/{name}.
func extractReportName(uri string) string {
	const prefix = uriScheme + "reports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
