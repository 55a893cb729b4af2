// Package tui provides an interactive terminal user interface for sentinel.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Subscriptions manages watched repositories.
	Subscriptions driving.SubscriptionService

	// Reports generates live reports and reads exported ones.
	Reports driving.ReportService

	// Settings shows the effective configuration. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	subscriptions driving.SubscriptionService,
	reports driving.ReportService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Subscriptions: subscriptions,
		Reports:       reports,
		Settings:      settings,
	}
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
