package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/erikdevelopment/portfolio/internal/content"
	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/erikdevelopment/portfolio/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var blogCmd = &cobra.Command{
	Use:   "blog [post-id]",
	Short: "Lists blog posts or renders one in the terminal",
	Long: `Without an argument, lists the posts of blog.json (optionally filtered by
--tag). With a post id, renders that post as styled Markdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, ok := readPosts(cmd.OutOrStdout(), filepath.Join(cfg.AssetsDir, content.BlogFile))
		if !ok {
			return nil
		}

		if len(args) == 0 {
			tag, _ := cmd.Flags().GetString("tag")
			return listPosts(cmd.OutOrStdout(), posts, tag)
		}

		post, ok := content.FindPost(posts, args[0])
		if !ok {
			return fmt.Errorf("post %q not found", args[0])
		}
		width, _ := cmd.Flags().GetInt("width")
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		out, err := renderer.Render(postMarkdown(post))
		if err != nil {
			return fmt.Errorf("failed to render post %s: %w", post.ID, err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

// readPosts loads the blog file. A missing or malformed file prints the blog
// failure message instead of failing the command.
func readPosts(w io.Writer, path string) ([]domain.Post, bool) {
	posts, err := content.LoadBlog(path)
	if err != nil {
		logger.Warn("Blog posts unavailable", zap.String("path", path), zap.Error(err))
		fmt.Fprintln(w, view.MsgBlogFailed)
		return nil, false
	}
	return posts, true
}

func listPosts(w io.Writer, posts []domain.Post, tag string) error {
	if tag == "" {
		tag = domain.AllTags
	}
	filtered := content.FilterByTag(posts, tag)
	if len(filtered) == 0 {
		_, err := fmt.Fprintln(w, view.MsgNoPostsForTag)
		return err
	}
	for _, p := range filtered {
		if _, err := fmt.Fprintf(w, "%-20s [%s] %s  %s\n", p.ID, p.Tag, p.Title, p.Date); err != nil {
			return err
		}
	}
	return nil
}

func postMarkdown(p domain.Post) string {
	md := fmt.Sprintf("# %s\n\n_%s · %s_\n\n", p.Title, p.Tag, p.Date)
	body := p.ContentMarkdown()
	if body == "" {
		body = view.MsgNoContent
	}
	return md + body + "\n"
}

func init() {
	rootCmd.AddCommand(blogCmd)
	blogCmd.Flags().StringP("tag", "t", "", "Only list posts with this tag")
	blogCmd.Flags().Int("width", 80, "Word wrap width of rendered posts")
}
