// Package reports provides the exported report browser for the TUI.
package reports

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// View lists exported report files, newest first.
type View struct {
	styles  *styles.Styles
	service driving.ReportService

	files    []domain.ReportFile
	selected int
	offset   int
	loading  bool
	err      error
	width    int
	height   int
}

// NewView creates a new reports view.
func NewView(s *styles.Styles, service driving.ReportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		width:   80,
		height:  24,
	}
}

// Init loads the report list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.ReportsLoaded{Err: errors.New("report service not available")}
		}
		files, err := v.service.ListReports()
		return messages.ReportsLoaded{Files: files, Err: err}
	}
}

// Update handles messages for the reports view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.ReportsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.files = msg.Files
			v.selected = 0
			v.offset = 0
		}

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.files)-1 {
			v.selected++
		}
	case "r":
		v.loading = true
		return v, v.load()
	case "enter":
		if v.selected < len(v.files) {
			name := v.files[v.selected].Name
			return v, func() tea.Msg { return messages.ReportFileSelected{Name: name} }
		}
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}
	v.scrollToSelection()
	return v, nil
}

// visibleRows is the number of file rows that fit below the title and above
// the help line.
func (v *View) visibleRows() int {
	return max(v.height-6, 1)
}

func (v *View) scrollToSelection() {
	rows := v.visibleRows()
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+rows {
		v.offset = v.selected - rows + 1
	}
}

// View renders the reports view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Reports (%d)", len(v.files))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n")
	case len(v.files) == 0:
		b.WriteString(v.styles.Warning.Render("No reports exported yet. Run `sentinel export` or `sentinel daily`."))
		b.WriteString("\n")
	default:
		end := min(v.offset+v.visibleRows(), len(v.files))
		for i := v.offset; i < end; i++ {
			b.WriteString(v.renderRow(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] view  [r] refresh  [esc] back"))
	return b.String()
}

func (v *View) renderRow(i int) string {
	f := v.files[i]
	label := f.Name
	if f.IsSummary {
		label += " *"
	}
	meta := v.styles.Muted.Render(fmt.Sprintf("  %s  %d bytes", f.ModTime.Local().Format("2006-01-02 15:04"), f.Size))

	if i == v.selected {
		return "> " + v.styles.Selected.Render(label) + meta
	}
	return "  " + v.styles.Normal.Render(label) + meta
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.scrollToSelection()
}

// Files returns the loaded report files.
func (v *View) Files() []domain.ReportFile {
	return v.files
}

// Selected returns the highlighted index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
