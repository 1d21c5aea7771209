package content

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/erikdevelopment/portfolio/internal/domain"
)

// FallbackQuote is shown when no quote is configured for a page.
const FallbackQuote = `echo "write clean code"`

// Quotes maps a page key to its footer quotes.
type Quotes map[string][]string

// LoadQuotes reads a footer-quotes.json file. The file must be a JSON object; a
// page whose value is not a list of strings is left out, so only that page falls
// back.
func LoadQuotes(path string) (Quotes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quotes file: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode quotes file: %w", err)
	}
	q := make(Quotes, len(raw))
	for page, value := range raw {
		var quotes []string
		if err := json.Unmarshal(value, &quotes); err != nil {
			continue
		}
		q[page] = quotes
	}
	return q, nil
}

// For returns the quotes of page. The default quotes are only used when page has
// no entry at all; an empty list stays empty.
func (q Quotes) For(page domain.Page) []string {
	if quotes, ok := q[string(page)]; ok {
		return quotes
	}
	return q[string(domain.PageDefault)]
}

// Pick chooses a random quote for page. intn must return a value in [0, n).
// A nil intn uses math/rand.
func (q Quotes) Pick(page domain.Page, intn func(n int) int) string {
	quotes := q.For(page)
	if len(quotes) == 0 {
		return FallbackQuote
	}
	if intn == nil {
		intn = rand.IntN
	}
	return quotes[intn(len(quotes))]
}

// DetectPage classifies a request path into a site section.
func DetectPage(path string) domain.Page {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "blog"):
		return domain.PageBlog
	case strings.Contains(p, "project"):
		return domain.PageProjects
	case p == "/" || p == "" || strings.Contains(p, "hub") || strings.Contains(p, "index"):
		return domain.PageHub
	default:
		return domain.PageDefault
	}
}
