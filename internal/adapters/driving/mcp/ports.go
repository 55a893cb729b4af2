package mcp

import (
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Subscriptions manages watched repositories.
	Subscriptions driving.SubscriptionService

	// Reports fetches, renders and exports reports.
	Reports driving.ReportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Subscriptions == nil {
		return ErrMissingSubscriptionService
	}
	if p.Reports == nil {
		return ErrMissingReportService
	}
	return nil
}
