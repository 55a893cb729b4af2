// Package subscriptions provides the subscription management view for the TUI.
package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driving"
)

// View lists subscribed repositories and lets the user add, remove and
// open a live report for each.
type View struct {
	styles  *styles.Styles
	service driving.SubscriptionService
	input   *input.RepoInput

	repos    []domain.RepoID
	selected int
	adding   bool
	loading  bool
	err      error
	width    int
	height   int
}

// NewView creates a new subscriptions view.
func NewView(s *styles.Styles, service driving.SubscriptionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		input:   input.NewRepoInput(s),
		width:   80,
		height:  24,
	}
}

// Init loads the subscription list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.SubscriptionsLoaded{Err: errors.New("subscription service not available")}
		}
		repos, err := v.service.List(context.Background())
		return messages.SubscriptionsLoaded{Repos: repos, Err: err}
	}
}

func (v *View) subscribe(raw string) tea.Cmd {
	return func() tea.Msg {
		repo, err := v.service.Subscribe(context.Background(), raw)
		return messages.SubscriptionAdded{Repo: repo, Err: err}
	}
}

func (v *View) unsubscribe(repo domain.RepoID) tea.Cmd {
	return func() tea.Msg {
		removed, err := v.service.Unsubscribe(context.Background(), repo.String())
		return messages.SubscriptionRemoved{Repo: removed, Err: err}
	}
}

// Update handles messages for the subscriptions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SubscriptionsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.repos = msg.Repos
			if v.selected >= len(v.repos) {
				v.selected = max(len(v.repos)-1, 0)
			}
		}
		return v, nil

	case messages.SubscriptionAdded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.load()

	case messages.SubscriptionRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.load()

	case tea.KeyMsg:
		if v.adding {
			return v.handleInputKey(msg)
		}
		return v.handleListKey(msg)
	}

	if v.adding {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.adding = false
		v.input.Blur()
		return v, nil
	case "enter":
		raw := strings.TrimSpace(v.input.Value())
		v.adding = false
		v.input.Blur()
		if raw == "" {
			return v, nil
		}
		return v, v.subscribe(raw)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.repos)-1 {
			v.selected++
		}
	case "a":
		v.adding = true
		v.err = nil
		return v, v.input.Focus()
	case "d", "delete":
		if repo, ok := v.Selected(); ok {
			return v, v.unsubscribe(repo)
		}
	case "r":
		v.loading = true
		return v, v.load()
	case "enter":
		if repo, ok := v.Selected(); ok {
			return v, func() tea.Msg { return messages.ReportRequested{Repo: repo} }
		}
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}
	return v, nil
}

// View renders the subscriptions view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Subscriptions (%d)", len(v.repos))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case len(v.repos) == 0:
		b.WriteString(v.styles.Warning.Render("No repositories subscribed. Press a to add one."))
		b.WriteString("\n")
	default:
		for i, repo := range v.repos {
			if i == v.selected {
				b.WriteString("> " + v.styles.Selected.Render(repo.String()))
			} else {
				b.WriteString("  " + v.styles.Repo.Render(repo.String()))
			}
			b.WriteString("\n")
		}
	}

	if v.adding {
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.adding {
		return v.styles.Help.Render("[enter] subscribe  [esc] cancel")
	}
	return v.styles.Help.Render("[enter] live report  [a] add  [d] remove  [r] refresh  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}

// Selected returns the highlighted repository.
func (v *View) Selected() (domain.RepoID, bool) {
	if v.selected < 0 || v.selected >= len(v.repos) {
		return "", false
	}
	return v.repos[v.selected], true
}

// Repos returns the loaded repositories.
func (v *View) Repos() []domain.RepoID {
	return v.repos
}

// Adding reports whether the repository input is open.
func (v *View) Adding() bool {
	return v.adding
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
