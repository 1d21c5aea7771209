package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPage(t *testing.T) {
	tests := map[string]domain.Page{
		"/blog":         domain.PageBlog,
		"/BLOG.html":    domain.PageBlog,
		"/projects":     domain.PageProjects,
		"/project.html": domain.PageProjects,
		"/":             domain.PageHub,
		"/index.html":   domain.PageHub,
		"/hub":          domain.PageHub,
		"/terminal":     domain.PageDefault,
		"/imprint.html": domain.PageDefault,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectPage(path), path)
	}
}

func TestQuotes_Pick(t *testing.T) {
	q := Quotes{
		"blog":    {"read more"},
		"default": {"d1", "d2"},
		"hub":     {},
	}
	first := func(int) int { return 0 }
	last := func(n int) int { return n - 1 }

	assert.Equal(t, "read more", q.Pick(domain.PageBlog, first))
	assert.Equal(t, "d2", q.Pick(domain.PageProjects, last))
	assert.Equal(t, FallbackQuote, q.Pick(domain.PageHub, first), "empty page list does not use the default list")
	assert.Equal(t, FallbackQuote, Quotes{}.Pick(domain.PageBlog, first))
	assert.Equal(t, FallbackQuote, Quotes(nil).Pick(domain.PageBlog, nil))
	assert.Contains(t, []string{"d1", "d2"}, q.Pick(domain.PageDefault, nil))
}

func TestLoadQuotes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, QuotesFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"blog": ["a"], "default": ["b"]}`), 0o600))

	q, err := LoadQuotes(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, q.For(domain.PageBlog))

	require.NoError(t, os.WriteFile(path, []byte(`{"blog": "oops", "projects": ["p1"], "hub": [1, 2], "default": ["d"]}`), 0o600))
	q, err = LoadQuotes(path)
	require.NoError(t, err)
	assert.Equal(t, Quotes{"projects": {"p1"}, "default": {"d"}}, q)
	assert.Equal(t, "p1", q.Pick(domain.PageProjects, nil))
	assert.Equal(t, "d", q.Pick(domain.PageBlog, nil), "a malformed page entry falls back on its own")

	require.NoError(t, os.WriteFile(path, []byte(`["not", "a", "map"]`), 0o600))
	_, err = LoadQuotes(path)
	assert.ErrorContains(t, err, "failed to decode quotes file")
}

func TestResolveScript(t *testing.T) {
	now := time.Date(2026, 10, 19, 14, 3, 12, 0, time.UTC)
	script := ResolveScript(DefaultScript(), now)

	var date domain.TerminalEntry
	for _, e := range script {
		if e.Cmd == "date" {
			date = e
		}
	}
	assert.Equal(t, "19.10.2026, 14:03:12", date.Out)
	assert.Empty(t, DefaultScript()[18].Out, "built-in script must stay unresolved")
	assert.Equal(t, "whoami", script[0].Cmd)
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TerminalFile)

	require.NoError(t, os.WriteFile(path, []byte(`[{"cmd": "ls", "out": "x"}]`), 0o600))
	entries, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.TerminalEntry{{Cmd: "ls", Out: "x"}}, entries)

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))
	_, err = LoadScript(path)
	assert.Error(t, err)
}
