package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/montanaflynn/stats"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine derives display lists from a catalog. Name ordering follows the collation
// rules of its language.
type Engine struct {
	tag language.Tag
}

// NewEngine creates an Engine collating names according to tag.
func NewEngine(tag language.Tag) *Engine {
	return &Engine{tag: tag}
}

// Derive filters and orders repos according to state. It never modifies repos and
// always returns a fresh slice. Equal sort keys are ordered by name, then full name.
func (e *Engine) Derive(repos []domain.Repository, state domain.State) []domain.Repository {
	query := state.NormalizedQuery()
	list := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if state.ActiveOrganization != "" && state.ActiveOrganization != domain.AllOrganizations &&
			repo.Owner() != state.ActiveOrganization {
			continue
		}
		if state.HideForks && repo.IsFork {
			continue
		}
		if query != "" && !matches(repo, query) {
			continue
		}
		list = append(list, repo)
	}

	// collate.Collator keeps internal buffers and is not safe for concurrent use.
	col := collate.New(e.tag)
	byName := func(a, b domain.Repository) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.FullName, b.FullName)
	}

	var compare func(a, b domain.Repository) int
	switch state.SortKey {
	case domain.SortName:
		compare = byName
	case domain.SortStars:
		compare = func(a, b domain.Repository) int {
			if c := cmp.Compare(b.StarCount, a.StarCount); c != 0 {
				return c
			}
			return byName(a, b)
		}
	default:
		compare = func(a, b domain.Repository) int {
			if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
				return c
			}
			return byName(a, b)
		}
	}
	slices.SortStableFunc(list, compare)
	return list
}

func matches(repo domain.Repository, query string) bool {
	return strings.Contains(strings.ToLower(repo.Name), query) ||
		strings.Contains(strings.ToLower(repo.Description), query) ||
		strings.Contains(strings.ToLower(repo.Language), query)
}

// Owners returns the organization selector entries: the ALL sentinel, the portfolio
// user, then every other owner in first-seen order.
func Owners(repos []domain.Repository, user string) []string {
	owners := []string{domain.AllOrganizations}
	seen := map[string]bool{domain.AllOrganizations: true}
	if user != "" {
		owners = append(owners, user)
		seen[user] = true
	}
	for _, repo := range repos {
		owner := repo.Owner()
		if seen[owner] {
			continue
		}
		seen[owner] = true
		owners = append(owners, owner)
	}
	return owners
}

// Summary describes a derived list relative to the full catalog.
type Summary struct {
	Shown       int
	Total       int
	Stars       int
	MedianStars float64
}

// Summarize computes the stats line for shown out of total records.
func Summarize(shown []domain.Repository, total int) Summary {
	s := Summary{Shown: len(shown), Total: total}
	if len(shown) == 0 {
		return s
	}
	counts := make([]int, 0, len(shown))
	for _, repo := range shown {
		counts = append(counts, repo.StarCount)
	}
	data := stats.LoadRawData(counts)
	if sum, err := stats.Sum(data); err == nil {
		s.Stars = int(sum)
	}
	if median, err := stats.Median(data); err == nil {
		s.MedianStars = median
	}
	return s
}
