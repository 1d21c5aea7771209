// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Repository holds the metadata of a single repository as returned by the listing API.
// Records are immutable once fetched.
type Repository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	StarCount   int       `json:"stars"`
	ForkCount   int       `json:"forks"`
	IsFork      bool      `json:"fork"`
	Disabled    bool      `json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
	OwnerLogin  string    `json:"owner"`
}

// Score is the composite popularity used for the featured marker.
func (r Repository) Score() int {
	return r.StarCount*2 + r.ForkCount
}

// Featured reports whether the repository reaches the given score threshold.
func (r Repository) Featured(threshold int) bool {
	return r.Score() >= threshold
}

// Owner returns the owner login, or "unknown" when the source did not provide one.
func (r Repository) Owner() string {
	if r.OwnerLogin == "" {
		return "unknown"
	}
	return r.OwnerLogin
}
