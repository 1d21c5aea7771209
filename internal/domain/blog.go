package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AllTags is the sentinel that disables the blog tag filter.
const AllTags = "ALL"

// Post is a single blog entry from blog.json.
type Post struct {
	ID      string  `json:"id"`
	Tag     string  `json:"tag"`
	Title   string  `json:"title"`
	Excerpt string  `json:"excerpt"`
	Content []Block `json:"content"`
	Date    string  `json:"date"`
}

// BlockType distinguishes content blocks.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
)

// Block is one piece of post content. In JSON a paragraph is a bare string and a
// list is an object {"type":"list","title":...,"items":[...]}.
type Block struct {
	Type  BlockType
	Text  string
	Title string
	Items []string
}

// UnmarshalJSON accepts both the string and the object form.
func (b *Block) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		b.Type = BlockParagraph
		return json.Unmarshal(data, &b.Text)
	}
	var obj struct {
		Type  string   `json:"type"`
		Title string   `json:"title"`
		Items []string `json:"items"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to decode content block: %w", err)
	}
	b.Type = BlockType(obj.Type)
	b.Title = obj.Title
	b.Items = obj.Items
	return nil
}

// MarshalJSON writes the block back in the form it was read in.
func (b Block) MarshalJSON() ([]byte, error) {
	if b.Type == BlockParagraph {
		return json.Marshal(b.Text)
	}
	return json.Marshal(struct {
		Type  BlockType `json:"type"`
		Title string    `json:"title,omitempty"`
		Items []string  `json:"items"`
	}{b.Type, b.Title, b.Items})
}

// Markdown converts the block to markdown. Unknown block types render as nothing.
func (b Block) Markdown() string {
	switch b.Type {
	case BlockParagraph:
		return b.Text
	case BlockList:
		var sb strings.Builder
		if b.Title != "" {
			fmt.Fprintf(&sb, "**%s**\n\n", b.Title)
		}
		for _, item := range b.Items {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
		return strings.TrimRight(sb.String(), "\n")
	default:
		return ""
	}
}

// ContentMarkdown joins all blocks of the post into one markdown document.
func (p Post) ContentMarkdown() string {
	parts := make([]string, 0, len(p.Content))
	for _, b := range p.Content {
		if md := b.Markdown(); md != "" {
			parts = append(parts, md)
		}
	}
	return strings.Join(parts, "\n\n")
}
