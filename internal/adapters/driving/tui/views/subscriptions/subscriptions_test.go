package subscriptions

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sentinel/internal/core/domain"
)

type stubService struct {
	repos []domain.RepoID
	err   error

	subscribed   string
	unsubscribed string
}

func (s *stubService) Subscribe(_ context.Context, raw string) (domain.RepoID, error) {
	s.subscribed = raw
	if s.err != nil {
		return "", s.err
	}
	return domain.ParseRepoID(raw)
}

func (s *stubService) Unsubscribe(_ context.Context, raw string) (domain.RepoID, error) {
	s.unsubscribed = raw
	if s.err != nil {
		return "", s.err
	}
	return domain.ParseRepoID(raw)
}

func (s *stubService) List(_ context.Context) ([]domain.RepoID, error) {
	return s.repos, s.err
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, svc *stubService) *View {
	t.Helper()
	v := NewView(nil, svc)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func TestView_Init_LoadsRepos(t *testing.T) {
	v := loaded(t, &stubService{repos: []domain.RepoID{"golang/go"}})

	assert.Equal(t, []domain.RepoID{"golang/go"}, v.Repos())
	repo, ok := v.Selected()
	assert.True(t, ok)
	assert.Equal(t, domain.RepoID("golang/go"), repo)
	assert.Contains(t, v.View(), "Subscriptions (1)")
}

func TestView_Init_NilService(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "not available")
}

func TestView_Empty(t *testing.T) {
	v := loaded(t, &stubService{})

	_, ok := v.Selected()
	assert.False(t, ok)
	assert.Contains(t, v.View(), "No repositories subscribed")

	// Keys that act on a selection do nothing.
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, cmd = v.Update(runes("d"))
	assert.Nil(t, cmd)
}

func TestView_Navigate(t *testing.T) {
	v := loaded(t, &stubService{repos: []domain.RepoID{"a/a", "b/b", "c/c"}})

	v.Update(runes("j"))
	v.Update(runes("j"))
	v.Update(runes("j"))
	repo, _ := v.Selected()
	assert.Equal(t, domain.RepoID("c/c"), repo)

	v.Update(runes("k"))
	repo, _ = v.Selected()
	assert.Equal(t, domain.RepoID("b/b"), repo)
}

func TestView_Enter_RequestsReport(t *testing.T) {
	v := loaded(t, &stubService{repos: []domain.RepoID{"golang/go"}})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ReportRequested{Repo: "golang/go"}, cmd())
}

func TestView_Add(t *testing.T) {
	svc := &stubService{}
	v := loaded(t, svc)

	v.Update(runes("a"))
	require.True(t, v.Adding())
	assert.Contains(t, v.View(), "Repository:")

	for _, r := range "octo/hello" {
		v.Update(runes(string(r)))
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.False(t, v.Adding())
	msg := cmd()
	assert.Equal(t, messages.SubscriptionAdded{Repo: "octo/hello"}, msg)
	assert.Equal(t, "octo/hello", svc.subscribed)

	// A successful add reloads the list.
	_, cmd = v.Update(msg)
	assert.NotNil(t, cmd)
}

func TestView_Add_CancelAndEmpty(t *testing.T) {
	v := loaded(t, &stubService{})

	v.Update(runes("a"))
	v.Update(runes("x"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, v.Adding())

	v.Update(runes("a"))
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty input does not subscribe")
}

func TestView_Remove(t *testing.T) {
	svc := &stubService{repos: []domain.RepoID{"golang/go"}}
	v := loaded(t, svc)

	_, cmd := v.Update(runes("d"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.SubscriptionRemoved{Repo: "golang/go"}, cmd())
	assert.Equal(t, "golang/go", svc.unsubscribed)
}

func TestView_ErrorMessages(t *testing.T) {
	v := loaded(t, &stubService{repos: []domain.RepoID{"golang/go"}})

	v.Update(messages.SubscriptionAdded{Err: domain.ErrAlreadyExists})
	assert.ErrorIs(t, v.Err(), domain.ErrAlreadyExists)
	assert.Contains(t, v.View(), "already exists")

	v.Update(messages.SubscriptionRemoved{Err: errors.New("locked")})
	assert.Contains(t, v.View(), "locked")

	// Load errors keep the previous list.
	v.Update(messages.SubscriptionsLoaded{Err: errors.New("db down")})
	assert.Len(t, v.Repos(), 1)
}

func TestView_SelectionClampedAfterReload(t *testing.T) {
	v := loaded(t, &stubService{repos: []domain.RepoID{"a/a", "b/b"}})
	v.Update(runes("j"))

	v.Update(messages.SubscriptionsLoaded{Repos: []domain.RepoID{"a/a"}})

	repo, ok := v.Selected()
	assert.True(t, ok)
	assert.Equal(t, domain.RepoID("a/a"), repo)
}

func TestView_Esc(t *testing.T) {
	v := loaded(t, &stubService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
