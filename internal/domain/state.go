package domain

import "strings"

// AllOrganizations is the sentinel that disables the organization filter.
const AllOrganizations = "ALL"

// SortKey selects the ordering of the derived display list.
type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortName    SortKey = "name"
	SortStars   SortKey = "stars"
)

// SortKeys lists the keys in the order the UI cycles through them.
var SortKeys = []SortKey{SortUpdated, SortName, SortStars}

// ParseSortKey maps user input to a SortKey. Unknown values fall back to SortUpdated.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortName:
		return SortName
	case SortStars:
		return SortStars
	default:
		return SortUpdated
	}
}

// Label is the human readable name shown in selectors.
func (k SortKey) Label() string {
	switch k {
	case SortName:
		return "Name"
	case SortStars:
		return "Stars"
	default:
		return "Zuletzt aktualisiert"
	}
}

// Next returns the key following k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortUpdated
}

// State is the filter/sort criteria selected in the UI.
// Event handlers are its only mutators.
type State struct {
	Query              string
	HideForks          bool
	ActiveOrganization string
	SortKey            SortKey
}

// DefaultState returns the state a page view starts with.
func DefaultState() State {
	return State{
		ActiveOrganization: AllOrganizations,
		SortKey:            SortUpdated,
	}
}

// NormalizedQuery returns the trimmed, lower-cased query.
func (s State) NormalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(s.Query))
}
