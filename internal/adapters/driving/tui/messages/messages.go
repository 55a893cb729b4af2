// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSubscriptions lists watched repositories.
	ViewSubscriptions
	// ViewReports lists exported report files.
	ViewReports
	// ViewReport shows one report in a scrollable viewport.
	ViewReport
	// ViewSettings shows the effective configuration.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSubscriptions:
		return "subscriptions"
	case ViewReports:
		return "reports"
	case ViewReport:
		return "report"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SubscriptionsLoaded carries the subscribed repositories.
type SubscriptionsLoaded struct {
	Repos []domain.RepoID
	Err   error
}

// SubscriptionAdded signals a repository was subscribed.
type SubscriptionAdded struct {
	Repo domain.RepoID
	Err  error
}

// SubscriptionRemoved signals a repository was unsubscribed.
type SubscriptionRemoved struct {
	Repo domain.RepoID
	Err  error
}

// ReportRequested asks the app to generate a live report for a repository.
type ReportRequested struct {
	Repo domain.RepoID
}

// ReportGenerated carries a freshly generated report.
type ReportGenerated struct {
	Report *domain.Report
	Err    error
}

// ReportsLoaded carries the exported report files.
type ReportsLoaded struct {
	Files []domain.ReportFile
	Err   error
}

// ReportFileSelected signals an exported report was chosen for viewing.
type ReportFileSelected struct {
	Name string
}

// ReportFileLoaded carries the content of an exported report.
type ReportFileLoaded struct {
	Name    string
	Content string
	Err     error
}

// ReportExported signals the displayed report was written to disk.
type ReportExported struct {
	Path string
	Err  error
}

// SettingsLoaded carries the effective configuration entries.
type SettingsLoaded struct {
	Entries []driving.SettingEntry
	Path    string
	Err     error
}
