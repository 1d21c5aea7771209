package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/erikdevelopment/portfolio/internal/tui"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/erikdevelopment/portfolio/internal/view"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browses the repository catalog interactively in the terminal",
	Long: `Opens a terminal UI over the repository catalog.

Keys: / search, f toggle forks, o cycle organization, s cycle sort order,
up/down move, q quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newCatalogLoader()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		model := tui.NewBrowser(ctx, loader.Load, usecase.NewEngine(cfg.LanguageTag()), cfg.GitHubUser,
			view.Options{DateLayout: cfg.DateLayout, FeaturedThreshold: cfg.FeaturedThreshold})
		if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("failed to run browser: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
