// Package settings provides the configuration overview for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// View shows every configuration key with its effective value and source.
// Editing happens through `sentinel settings set`.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	entries []driving.SettingEntry
	path    string
	offset  int
	err     error
	width   int
	height  int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
		width:           80,
		height:          24,
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errors.New("settings service not available")}
		}
		entries, err := v.settingsService.Entries()
		return messages.SettingsLoaded{
			Entries: entries,
			Path:    v.settingsService.Path(),
			Err:     err,
		}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SettingsLoaded:
		v.err = msg.Err
		v.entries = msg.Entries
		v.path = msg.Path
		v.offset = 0

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.offset > 0 {
				v.offset--
			}
		case "down", "j":
			if v.offset < v.maxOffset() {
				v.offset++
			}
		case "r":
			return v, v.loadSettings()
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		}
	}
	return v, nil
}

func (v *View) visibleRows() int {
	return max(v.height-7, 1)
}

func (v *View) maxOffset() int {
	return max(len(v.entries)-v.visibleRows(), 0)
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render(v.path))
	}
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n")
	}

	keyWidth := 0
	for _, e := range v.entries {
		keyWidth = max(keyWidth, len(e.Key))
	}

	end := min(v.offset+v.visibleRows(), len(v.entries))
	for _, e := range v.entries[v.offset:end] {
		value := e.Value
		if value == "" {
			value = "-"
		}
		line := fmt.Sprintf("%-*s  %s", keyWidth, e.Key, value)
		b.WriteString(v.styles.Normal.Render(line))
		if e.Source != "default" {
			b.WriteString(v.styles.Muted.Render(" (" + e.Source + ")"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] scroll  [r] reload  [esc] back   edit with: sentinel settings set <key> <value>"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.offset = min(v.offset, v.maxOffset())
}

// Entries returns the loaded entries.
func (v *View) Entries() []driving.SettingEntry {
	return v.entries
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
