package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/views/reports"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/views/subscriptions"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/views/viewer"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	menuView          *menu.View
	subscriptionsView *subscriptions.View
	reportsView       *reports.View
	viewerView        *viewer.View
	settingsView      *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		keymap:            km,
		status:            status.NewBar(s, km),
		menuView:          menu.NewView(s),
		subscriptionsView: subscriptions.NewView(s, ports.Subscriptions),
		reportsView:       reports.NewView(s, ports.Reports),
		viewerView:        viewer.NewView(s, ports.Reports),
		settingsView:      settings.NewView(s, ports.Settings),
		currentView:       messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("sentinel")
}

// Update implements tea.Model.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.ReportRequested:
		a.currentView = messages.ViewReport
		a.status.SetState(status.StateLoading, "Fetching "+msg.Repo.String())
		a.status.SetHints(nil)
		return a, a.viewerView.Generate(msg.Repo, messages.ViewSubscriptions)

	case messages.ReportFileSelected:
		a.currentView = messages.ViewReport
		a.status.Clear()
		a.status.SetHints(nil)
		return a, a.viewerView.Open(msg.Name, messages.ViewReports)

	case messages.ReportGenerated:
		a.viewerView, cmd = a.viewerView.Update(msg)
		a.setResult(msg.Err, "Report ready")
		return a, cmd

	case messages.ReportFileLoaded:
		a.viewerView, cmd = a.viewerView.Update(msg)
		a.setResult(msg.Err, "")
		return a, cmd

	case messages.ReportExported:
		a.viewerView, cmd = a.viewerView.Update(msg)
		a.setResult(msg.Err, "Saved "+msg.Path)
		return a, cmd

	case messages.SubscriptionsLoaded:
		a.subscriptionsView, cmd = a.subscriptionsView.Update(msg)
		if msg.Err != nil {
			a.setResult(msg.Err, "")
		}
		return a, cmd

	case messages.SubscriptionAdded:
		a.subscriptionsView, cmd = a.subscriptionsView.Update(msg)
		a.setResult(msg.Err, "Subscribed to "+msg.Repo.String())
		return a, cmd

	case messages.SubscriptionRemoved:
		a.subscriptionsView, cmd = a.subscriptionsView.Update(msg)
		a.setResult(msg.Err, "Unsubscribed from "+msg.Repo.String())
		return a, cmd

	case messages.ReportsLoaded:
		a.reportsView, cmd = a.reportsView.Update(msg)
		if msg.Err != nil {
			a.setResult(msg.Err, "")
		}
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.setResult(msg.Err, "")
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink, mouse) to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSubscriptions:
		a.subscriptionsView, cmd = a.subscriptionsView.Update(msg)
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	case messages.ViewReport:
		a.viewerView, cmd = a.viewerView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		if msg.String() == "?" {
			return a, a.switchView(messages.ViewHelp)
		}
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSubscriptions:
		a.subscriptionsView, cmd = a.subscriptionsView.Update(msg)
	case messages.ViewReports:
		a.reportsView, cmd = a.reportsView.Update(msg)
	case messages.ViewReport:
		a.viewerView, cmd = a.viewerView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			return a, a.switchView(messages.ViewMenu)
		}
	}
	return a, cmd
}

// switchView activates view and returns its initial command.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.status.Clear()

	switch view {
	case messages.ViewSubscriptions:
		a.status.SetHints(a.keymap.SubscriptionsHelp())
		return a.subscriptionsView.Init()
	case messages.ViewReports:
		a.status.SetHints(a.keymap.ReportsHelp())
		return a.reportsView.Init()
	case messages.ViewSettings:
		a.status.SetHints(nil)
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewReport, messages.ViewHelp:
		a.status.SetHints(nil)
	}
	return nil
}

// setResult reports err in the status bar, or success when err is nil and
// success is non-empty.
func (a *App) setResult(err error, success string) {
	a.err = err
	switch {
	case err != nil:
		a.status.SetError(err)
	case success != "":
		a.status.SetState(status.StateDone, success)
	default:
		a.status.Clear()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSubscriptions:
		body = a.subscriptionsView.View()
	case messages.ViewReports:
		body = a.reportsView.View()
	case messages.ViewReport:
		body = a.viewerView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
	return body + "\n" + a.status.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  ?           This help
  q           Quit

Subscriptions:
  enter       Live report for the highlighted repository
  a           Subscribe (owner/name or GitHub URL)
  d           Unsubscribe
  r           Refresh

Reports:
  enter       Open exported report
  r           Refresh

Report viewer:
  ↑/↓, PgUp/PgDn  Scroll
  g/G         Top/bottom
  s           Save a live report to the report directory

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view. One row is
// reserved for the status bar.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := max(height-1, 1)
	a.menuView.SetDimensions(width, height)
	a.subscriptionsView.SetDimensions(width, body)
	a.reportsView.SetDimensions(width, body)
	a.viewerView.SetDimensions(width, body)
	a.settingsView.SetDimensions(width, body)
	a.status.SetWidth(width)
}
