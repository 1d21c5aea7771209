// Package content loads the static JSON assets of the site: blog posts, footer
// quotes and the terminal script.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/erikdevelopment/portfolio/internal/domain"
)

// Asset file names inside the assets directory.
const (
	BlogFile     = "blog.json"
	QuotesFile   = "footer-quotes.json"
	TerminalFile = "terminal.json"
)

// ErrNoPosts is returned when blog.json has no "posts" array.
var ErrNoPosts = errors.New("blog file has no posts array")

// LoadBlog reads the posts of a blog.json file.
func LoadBlog(path string) ([]domain.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blog file: %w", err)
	}
	return ParseBlog(data)
}

// ParseBlog decodes a blog document of the form {"posts": [...]}.
func ParseBlog(data []byte) ([]domain.Post, error) {
	var doc struct {
		Posts json.RawMessage `json:"posts"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode blog file: %w", err)
	}
	raw := bytes.TrimSpace(doc.Posts)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrNoPosts
	}
	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode blog posts: %w", err)
	}
	return posts, nil
}

// Tags returns ALL followed by the distinct post tags in first-seen order.
func Tags(posts []domain.Post) []string {
	tags := []string{domain.AllTags}
	seen := map[string]bool{domain.AllTags: true}
	for _, p := range posts {
		if seen[p.Tag] {
			continue
		}
		seen[p.Tag] = true
		tags = append(tags, p.Tag)
	}
	return tags
}

// FilterByTag returns the posts carrying tag. ALL and the empty tag keep every post.
func FilterByTag(posts []domain.Post, tag string) []domain.Post {
	if tag == "" || tag == domain.AllTags {
		return posts
	}
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.Tag == tag {
			out = append(out, p)
		}
	}
	return out
}

// FindPost looks a post up by id.
func FindPost(posts []domain.Post, id string) (domain.Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}
