package view

import (
	"io"

	"github.com/erikdevelopment/portfolio/internal/domain"
)

// HubPage is the landing page with the terminal transcript.
type HubPage struct {
	Chrome
	User     string
	Terminal []domain.TerminalEntry
}

// RenderHub writes the landing page.
func (r *Renderer) RenderHub(w io.Writer, page HubPage) error {
	return r.execute(w, "hub", "layout", page)
}
