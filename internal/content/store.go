package content

import (
	"path/filepath"
	"sync"

	"github.com/erikdevelopment/portfolio/internal/domain"
	"go.uber.org/zap"
)

// Assets is one consistent snapshot of the asset directory.
type Assets struct {
	Posts   []domain.Post
	BlogErr error
	Quotes  Quotes
	Script  []domain.TerminalEntry
}

// Store keeps the most recently loaded assets. Missing or malformed files never fail
// a load: the blog keeps its error for display, quotes become empty and the terminal
// falls back to the built-in script.
type Store struct {
	dir    string
	logger *zap.Logger

	mu     sync.RWMutex
	assets Assets
}

// NewStore creates a Store for dir and loads it once.
func NewStore(dir string, logger *zap.Logger) *Store {
	s := &Store{dir: dir, logger: logger}
	s.Reload()
	return s
}

// Dir returns the watched asset directory.
func (s *Store) Dir() string {
	return s.dir
}

// Reload re-reads every asset file and swaps the snapshot.
func (s *Store) Reload() {
	var a Assets

	a.Posts, a.BlogErr = LoadBlog(filepath.Join(s.dir, BlogFile))
	if a.BlogErr != nil {
		s.logger.Warn("Blog posts unavailable", zap.Error(a.BlogErr))
	}

	quotes, err := LoadQuotes(filepath.Join(s.dir, QuotesFile))
	if err != nil {
		s.logger.Warn("Footer quotes unavailable, using fallback", zap.Error(err))
		quotes = Quotes{}
	}
	a.Quotes = quotes

	script, err := LoadScript(filepath.Join(s.dir, TerminalFile))
	if err != nil {
		s.logger.Debug("Using built-in terminal script", zap.Error(err))
		script = DefaultScript()
	}
	a.Script = script

	s.mu.Lock()
	s.assets = a
	s.mu.Unlock()
	s.logger.Debug("Assets loaded", zap.String("dir", s.dir), zap.Int("posts", len(a.Posts)))
}

// Snapshot returns the current assets.
func (s *Store) Snapshot() Assets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets
}
