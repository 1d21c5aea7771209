package view

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/erikdevelopment/portfolio/internal/content"
	"github.com/erikdevelopment/portfolio/internal/domain"
)

// PostView is the view model of one blog post.
type PostView struct {
	ID      string
	Tag     string
	Title   string
	Excerpt string
	Content template.HTML
	Date    string
}

// BlogPage is the view model of the blog. Exactly one of Single, Posts or Message
// is shown.
type BlogPage struct {
	Chrome
	Tags    []Option
	Posts   []PostView
	Single  *PostView
	Message string
}

// BlogPageFor builds the blog page for the loaded posts. postID selects the single
// post view when it matches a post; tag filters the list otherwise.
func (r *Renderer) BlogPageFor(posts []domain.Post, loadErr error, postID, tag string) BlogPage {
	var page BlogPage
	if loadErr != nil {
		page.Message = MsgBlogFailed
		return page
	}
	if tag == "" {
		tag = domain.AllTags
	}

	if postID != "" {
		if post, ok := content.FindPost(posts, postID); ok {
			v := r.Post(post)
			page.Single = &v
			return page
		}
	}

	for _, t := range content.Tags(posts) {
		page.Tags = append(page.Tags, Option{Value: t, Label: t, Selected: t == tag})
	}
	filtered := content.FilterByTag(posts, tag)
	if len(filtered) == 0 {
		page.Message = MsgNoPostsForTag
		return page
	}
	for _, p := range filtered {
		page.Posts = append(page.Posts, r.Post(p))
	}
	return page
}

// Post converts a post, rendering its content blocks as sanitized HTML.
func (r *Renderer) Post(p domain.Post) PostView {
	return PostView{
		ID:      p.ID,
		Tag:     p.Tag,
		Title:   p.Title,
		Excerpt: p.Excerpt,
		Content: r.Markdown(p.ContentMarkdown()),
		Date:    r.formatPostDate(p.Date),
	}
}

// Markdown renders md to sanitized HTML. Empty input renders the no-content note.
func (r *Renderer) Markdown(md string) template.HTML {
	if md == "" {
		return template.HTML("<p>" + template.HTMLEscapeString(MsgNoContent) + "</p>")
	}
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(md) + "</p>")
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

func (r *Renderer) formatPostDate(s string) string {
	if s == "" {
		return "—"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return r.FormatDate(t)
		}
	}
	return s
}

// RenderBlog writes the blog page.
func (r *Renderer) RenderBlog(w io.Writer, page BlogPage) error {
	return r.execute(w, "blog", "layout", page)
}
