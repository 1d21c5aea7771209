// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/erikdevelopment/portfolio/internal/gateway"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxOrgFetches bounds the concurrent organization sub-fetches.
const maxOrgFetches = 4

// Catalog is the full record list of one successful load.
type Catalog struct {
	User         string
	Repositories []domain.Repository
	LoadedAt     time.Time
}

// ProgressFunc is told how many fetches finished out of the currently known total.
type ProgressFunc func(done, total int)

// CatalogLoader is the use case for building the repository catalog.
// It orchestrates the user listing and the optional organization sub-fetches.
type CatalogLoader struct {
	fetcher  gateway.Fetcher
	user     string
	logger   *zap.Logger
	progress ProgressFunc
	now      func() time.Time
}

// NewCatalogLoader creates a new CatalogLoader instance.
func NewCatalogLoader(fetcher gateway.Fetcher, user string, logger *zap.Logger) *CatalogLoader {
	return &CatalogLoader{
		fetcher: fetcher,
		user:    user,
		logger:  logger,
		now:     time.Now,
	}
}

// OnProgress registers fn to be called after every completed fetch.
func (l *CatalogLoader) OnProgress(fn ProgressFunc) {
	l.progress = fn
}

// Load fetches the catalog. A failure of the user listing fails the load; failures of
// the organization listing or of any organization's repositories only shrink the result.
// Disabled repositories are dropped and duplicates are merged by full name.
func (l *CatalogLoader) Load(ctx context.Context) (*Catalog, error) {
	l.logger.Info("Loading repository catalog", zap.String("user", l.user))

	tracker := &progressTracker{fn: l.progress, total: 2}

	var userRepos []domain.Repository
	var orgs []string

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		userRepos, err = l.fetcher.FetchUserRepos(egCtx, l.user)
		tracker.done()
		return err
	})
	eg.Go(func() error {
		var err error
		orgs, err = l.fetcher.FetchOrganizations(egCtx, l.user)
		if err != nil {
			l.logger.Warn("Organization listing unavailable", zap.Error(err))
			orgs = nil
		}
		tracker.done()
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	tracker.grow(len(orgs))
	orgRepos := make([][]domain.Repository, len(orgs))
	eg, egCtx = errgroup.WithContext(ctx)
	eg.SetLimit(maxOrgFetches)
	for i, org := range orgs {
		eg.Go(func() error {
			repos, err := l.fetcher.FetchOrgRepos(egCtx, org)
			if err != nil {
				l.logger.Warn("Skipping organization repositories", zap.String("org", org), zap.Error(err))
			}
			orgRepos[i] = repos
			tracker.done()
			return nil
		})
	}
	_ = eg.Wait()

	all := append([]domain.Repository{}, userRepos...)
	for _, repos := range orgRepos {
		all = append(all, repos...)
	}
	merged := mergeRepositories(all)

	l.logger.Info("Repository catalog loaded",
		zap.Int("repositories", len(merged)),
		zap.Int("organizations", len(orgs)))
	return &Catalog{
		User:         l.user,
		Repositories: merged,
		LoadedAt:     l.now(),
	}, nil
}

// mergeRepositories drops disabled records and de-duplicates by full name. A later
// duplicate replaces the earlier record but keeps the earlier position.
func mergeRepositories(repos []domain.Repository) []domain.Repository {
	index := make(map[string]int, len(repos))
	merged := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.Disabled {
			continue
		}
		key := repo.FullName
		if key == "" {
			key = repo.Owner() + "/" + repo.Name
		}
		if i, ok := index[key]; ok {
			merged[i] = repo
			continue
		}
		index[key] = len(merged)
		merged = append(merged, repo)
	}
	return merged
}

type progressTracker struct {
	mu       sync.Mutex
	fn       ProgressFunc
	finished int
	total    int
}

func (p *progressTracker) grow(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total += n
	if p.fn != nil {
		p.fn(p.finished, p.total)
	}
}

func (p *progressTracker) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished++
	if p.fn != nil {
		p.fn(p.finished, p.total)
	}
}
