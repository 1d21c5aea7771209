package view

import (
	"io"
	"time"

	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/erikdevelopment/portfolio/internal/usecase"
)

// RepoCard is the view model of one repository tile.
type RepoCard struct {
	Name        string
	Description string
	Language    string
	Stars       int
	Forks       int
	IsFork      bool
	Updated     string
	UpdatedAt   time.Time
	URL         string
	Owner       string
	Featured    bool
}

// Option is one entry of a selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ProjectsPage is the view model of the repository browser.
type ProjectsPage struct {
	Chrome
	State         domain.State
	Organizations []Option
	SortKeys      []Option
	Cards         []RepoCard
	Summary       usecase.Summary
	Loading       bool
	Error         string
}

// Cards converts a derived display list into tiles.
func (r *Renderer) Cards(repos []domain.Repository) []RepoCard {
	return BuildCards(repos, r.opts)
}

// BuildCards converts a derived display list into tiles using opts for dates and
// the featured marker.
func BuildCards(repos []domain.Repository, opts Options) []RepoCard {
	cards := make([]RepoCard, 0, len(repos))
	for _, repo := range repos {
		card := RepoCard{
			Name:        repo.Name,
			Description: repo.Description,
			Language:    repo.Language,
			Stars:       repo.StarCount,
			Forks:       repo.ForkCount,
			IsFork:      repo.IsFork,
			Updated:     opts.FormatDate(repo.UpdatedAt),
			UpdatedAt:   repo.UpdatedAt,
			URL:         repo.URL,
			Owner:       repo.Owner(),
			Featured:    repo.Featured(opts.FeaturedThreshold),
		}
		if card.Description == "" {
			card.Description = MsgNoDescription
		}
		if card.Language == "" {
			card.Language = MsgNoLanguage
		}
		cards = append(cards, card)
	}
	return cards
}

// OrganizationOptions builds the organization selector from usecase.Owners output.
func OrganizationOptions(owners []string, active string) []Option {
	opts := make([]Option, 0, len(owners))
	for _, owner := range owners {
		label := owner
		if owner == domain.AllOrganizations {
			label = LabelAllOrgs
		}
		opts = append(opts, Option{Value: owner, Label: label, Selected: owner == active})
	}
	return opts
}

// SortOptions builds the sort selector.
func SortOptions(active domain.SortKey) []Option {
	opts := make([]Option, 0, len(domain.SortKeys))
	for _, key := range domain.SortKeys {
		opts = append(opts, Option{Value: string(key), Label: key.Label(), Selected: key == active})
	}
	return opts
}

// RenderProjects writes the full repository browser page.
func (r *Renderer) RenderProjects(w io.Writer, page ProjectsPage) error {
	return r.execute(w, "projects", "layout", page)
}

// RenderTiles writes only the results block of page: the stats line and the tile
// grid, or the error or loading message. An empty card list yields the no-results
// placeholder.
func (r *Renderer) RenderTiles(w io.Writer, page ProjectsPage) error {
	return r.execute(w, "projects", "tiles", page)
}
