// Package viewer provides the scrollable report viewer for the TUI.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// chrome is the number of rows used by the title, border and help line.
const chrome = 6

// View shows a report in a scrollable viewport. It displays either a live
// report for one repository or an exported file.
type View struct {
	styles   *styles.Styles
	service  driving.ReportService
	viewport viewport.Model

	title   string
	repo    domain.RepoID
	back    messages.ViewType
	content string
	loading bool
	saved   string
	err     error
	width   int
	height  int
}

// NewView creates a new report viewer.
func NewView(s *styles.Styles, service driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		service:  service,
		viewport: viewport.New(76, 18),
		back:     messages.ViewMenu,
		width:    80,
		height:   24,
	}
}

// Generate starts a live report for repo. Esc returns to back.
func (v *View) Generate(repo domain.RepoID, back messages.ViewType) tea.Cmd {
	v.reset(repo.String(), back)
	v.repo = repo
	return func() tea.Msg {
		if v.service == nil {
			return messages.ReportGenerated{Err: errors.New("report service not available")}
		}
		reports, err := v.service.Generate(context.Background(), driving.ReportRequest{
			Repos: []domain.RepoID{repo},
		})
		if err != nil {
			return messages.ReportGenerated{Err: err}
		}
		if len(reports) == 0 {
			return messages.ReportGenerated{Err: fmt.Errorf("no report for %s", repo)}
		}
		return messages.ReportGenerated{Report: reports[0]}
	}
}

// Open loads an exported report file. Esc returns to back.
func (v *View) Open(name string, back messages.ViewType) tea.Cmd {
	v.reset(name, back)
	return func() tea.Msg {
		if v.service == nil {
			return messages.ReportFileLoaded{Name: name, Err: errors.New("report service not available")}
		}
		content, err := v.service.ReadReport(name)
		return messages.ReportFileLoaded{Name: name, Content: content, Err: err}
	}
}

func (v *View) reset(title string, back messages.ViewType) {
	v.title = title
	v.back = back
	v.repo = ""
	v.content = ""
	v.saved = ""
	v.err = nil
	v.loading = true
	v.viewport.SetContent("")
	v.viewport.GotoTop()
}

func (v *View) export() tea.Cmd {
	repo := v.repo
	return func() tea.Msg {
		saved, err := v.service.Export(context.Background(), driving.ReportRequest{
			Repos: []domain.RepoID{repo},
		})
		if err != nil {
			return messages.ReportExported{Err: err}
		}
		if len(saved) == 0 {
			return messages.ReportExported{Err: fmt.Errorf("nothing exported for %s", repo)}
		}
		return messages.ReportExported{Path: saved[0].FinalPath()}
	}
}

// Update handles messages for the viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportGenerated:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.setContent(msg.Report.Content())
		return v, nil

	case messages.ReportFileLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.setContent(msg.Content)
		return v, nil

	case messages.ReportExported:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.saved = msg.Path
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			back := v.back
			return v, func() tea.Msg { return messages.ViewChanged{View: back} }
		case "s":
			if v.repo != "" && !v.loading && v.service != nil {
				return v, v.export()
			}
			return v, nil
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) setContent(content string) {
	v.content = content
	v.err = nil
	v.viewport.SetContent(content)
	v.viewport.GotoTop()
}

// View renders the viewer.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title))
	if v.repo != "" {
		b.WriteString(v.styles.Muted.Render("  (live)"))
	}
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Fetching report..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	default:
		b.WriteString(v.styles.Viewer.Render(v.viewport.View()))
	}
	b.WriteString("\n")

	if v.saved != "" {
		b.WriteString(v.styles.Success.Render("Saved " + v.saved))
		b.WriteString("\n")
	}
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	help := fmt.Sprintf("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  %3.0f%%", v.viewport.ScrollPercent()*100)
	if v.repo != "" {
		help += "  [s] save"
	}
	return v.styles.Help.Render(help + "  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(width-4, 20)
	v.viewport.Height = max(height-chrome, 3)
	if v.content != "" {
		v.viewport.SetContent(v.content)
	}
}

// Content returns the displayed report.
func (v *View) Content() string {
	return v.content
}

// Title returns the report title.
func (v *View) Title() string {
	return v.title
}

// Saved returns the path of the last export, if any.
func (v *View) Saved() string {
	return v.saved
}

// Loading reports whether a fetch is in progress.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
