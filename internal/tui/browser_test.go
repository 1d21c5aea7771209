package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/erikdevelopment/portfolio/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testRepos() []domain.Repository {
	return []domain.Repository{
		{Name: "alpha", FullName: "octo/alpha", StarCount: 5, OwnerLogin: "octo", UpdatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "beta", FullName: "octo/beta", StarCount: 20, IsFork: true, OwnerLogin: "octo", UpdatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "gamma", FullName: "acme/gamma", StarCount: 1, OwnerLogin: "acme", Language: "Go", UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func newTestBrowser(load LoadFunc) Browser {
	return NewBrowser(context.Background(), load, usecase.NewEngine(language.German), "octo",
		view.Options{DateLayout: view.DefaultDateLayout, FeaturedThreshold: 10})
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(repos []domain.Repository) []string {
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.Name)
	}
	return out
}

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) Browser {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	b, ok := m.(Browser)
	require.True(t, ok)
	return b
}

func TestBrowser_Fetch(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		b := newTestBrowser(func(ctx context.Context) (*usecase.Catalog, error) {
			return &usecase.Catalog{Repositories: testRepos()}, nil
		})
		assert.Contains(t, b.View(), view.MsgLoading)

		b = send(t, b, b.fetch())
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, names(b.Shown()))
		assert.Contains(t, b.View(), "3 Repos angezeigt (gesamt 3)")
		assert.NotContains(t, b.View(), view.MsgLoading)
	})

	t.Run("failed", func(t *testing.T) {
		b := newTestBrowser(func(ctx context.Context) (*usecase.Catalog, error) {
			return nil, errors.New("boom")
		})
		b = send(t, b, b.fetch())
		out := b.View()
		assert.Contains(t, out, view.MsgLoadFailed)
		assert.Contains(t, out, "boom")
		assert.NotContains(t, out, "Repos angezeigt")
	})
}

func TestBrowser_Keys(t *testing.T) {
	loaded := catalogLoadedMsg{catalog: &usecase.Catalog{Repositories: testRepos()}}

	testCases := []struct {
		name      string
		keys      []tea.Msg
		wantState func(s *domain.State)
		wantNames []string
	}{
		{
			name:      "toggle forks",
			keys:      []tea.Msg{key("f")},
			wantState: func(s *domain.State) { s.HideForks = true },
			wantNames: []string{"alpha", "gamma"},
		},
		{
			name:      "toggle forks twice",
			keys:      []tea.Msg{key("f"), key("f")},
			wantState: func(s *domain.State) {},
			wantNames: []string{"alpha", "beta", "gamma"},
		},
		{
			name:      "cycle to sort by name",
			keys:      []tea.Msg{key("s")},
			wantState: func(s *domain.State) { s.SortKey = domain.SortName },
			wantNames: []string{"alpha", "beta", "gamma"},
		},
		{
			name:      "cycle to sort by stars",
			keys:      []tea.Msg{key("s"), key("s")},
			wantState: func(s *domain.State) { s.SortKey = domain.SortStars },
			wantNames: []string{"beta", "alpha", "gamma"},
		},
		{
			name:      "organization cycles past user to acme",
			keys:      []tea.Msg{key("o"), key("o")},
			wantState: func(s *domain.State) { s.ActiveOrganization = "acme" },
			wantNames: []string{"gamma"},
		},
		{
			name:      "organization wraps back to all",
			keys:      []tea.Msg{key("o"), key("o"), key("o")},
			wantState: func(s *domain.State) {},
			wantNames: []string{"alpha", "beta", "gamma"},
		},
		{
			name:      "search recomputes on every keystroke",
			keys:      []tea.Msg{key("/"), key("g"), key("o")},
			wantState: func(s *domain.State) { s.Query = "go" },
			wantNames: []string{"gamma"},
		},
		{
			name:      "keys typed into search are not commands",
			keys:      []tea.Msg{key("/"), key("f"), tea.KeyMsg{Type: tea.KeyEnter}, key("f")},
			wantState: func(s *domain.State) { s.Query = "f"; s.HideForks = true },
			wantNames: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := send(t, newTestBrowser(nil), append([]tea.Msg{loaded}, tc.keys...)...)

			want := domain.DefaultState()
			tc.wantState(&want)
			assert.Equal(t, want, b.State())
			assert.Equal(t, tc.wantNames, names(b.Shown()))
		})
	}
}

func TestBrowser_NoResults(t *testing.T) {
	b := send(t, newTestBrowser(nil),
		catalogLoadedMsg{catalog: &usecase.Catalog{Repositories: testRepos()}},
		key("/"), key("z"), key("z"), key("z"))
	assert.Empty(t, b.Shown())
	assert.Contains(t, b.View(), view.MsgNoResults)
}

func TestBrowser_Quit(t *testing.T) {
	b := newTestBrowser(nil)
	_, cmd := b.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = b.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowser_Cursor(t *testing.T) {
	b := send(t, newTestBrowser(nil),
		catalogLoadedMsg{catalog: &usecase.Catalog{Repositories: testRepos()}},
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, b.cursor)

	b = send(t, b, key("f"))
	assert.Equal(t, 1, b.cursor)

	b = send(t, b, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, b.cursor)
}
