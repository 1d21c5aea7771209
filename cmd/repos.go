package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/erikdevelopment/portfolio/internal/view"
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Lists the derived repository list once and exits",
	Long: `Fetches the catalog of the configured user and their organizations, applies
the same filter and sort the projects page uses, and prints the result as a
table or as JSON.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newCatalogLoader()
		if err != nil {
			return err
		}

		showProgress, _ := cmd.Flags().GetBool("progress")
		if showProgress {
			bar := pb.Full.New(0)
			bar.SetWriter(os.Stderr)
			bar.Start()
			defer bar.Finish()
			loader.OnProgress(func(done, total int) {
				bar.SetTotal(int64(total))
				bar.SetCurrent(int64(done))
			})
		}

		catalog, err := loader.Load(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load repositories: %w", err)
		}

		state := stateFromFlags(cmd)
		shown := usecase.NewEngine(cfg.LanguageTag()).Derive(catalog.Repositories, state)

		output, _ := cmd.Flags().GetString("output")
		switch output {
		case "json":
			return writeJSON(cmd.OutOrStdout(), shown)
		case "table":
			opts := view.Options{DateLayout: cfg.DateLayout, FeaturedThreshold: cfg.FeaturedThreshold}
			return writeTable(cmd.OutOrStdout(), view.BuildCards(shown, opts), usecase.Summarize(shown, len(catalog.Repositories)))
		default:
			return fmt.Errorf("unknown output format %q (want table or json)", output)
		}
	},
}

func addStateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "Search term matched against name, description and language")
	cmd.Flags().Bool("hide-forks", false, "Hide forked repositories")
	cmd.Flags().StringP("org", "o", "", "Only show repositories of this owner")
	cmd.Flags().StringP("sort", "s", string(domain.SortUpdated), "Sort key: updated, name or stars")
}

func stateFromFlags(cmd *cobra.Command) domain.State {
	state := domain.DefaultState()
	state.Query, _ = cmd.Flags().GetString("query")
	state.HideForks, _ = cmd.Flags().GetBool("hide-forks")
	if org, _ := cmd.Flags().GetString("org"); org != "" {
		state.ActiveOrganization = org
	}
	sortKey, _ := cmd.Flags().GetString("sort")
	state.SortKey = domain.ParseSortKey(sortKey)
	return state
}

func writeJSON(w io.Writer, repos []domain.Repository) error {
	jsonData, err := json.MarshalIndent(repos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal repositories to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func writeTable(w io.Writer, cards []view.RepoCard, summary usecase.Summary) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, view.MsgNoResults)
		return err
	}

	t := table.New().Headers("NAME", "OWNER", "LANGUAGE", "STARS", "FORKS", "UPDATED", "")
	for _, c := range cards {
		marker := ""
		if c.Featured {
			marker = "★"
		}
		if c.IsFork {
			marker += " fork"
		}
		t.Row(c.Name, c.Owner, c.Language, strconv.Itoa(c.Stars), strconv.Itoa(c.Forks), humanize.Time(c.UpdatedAt), marker)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d Repos angezeigt (gesamt %d) · ★ %s · Median ★ %s\n",
		summary.Shown, summary.Total, humanize.Comma(int64(summary.Stars)), humanize.Ftoa(summary.MedianStars))
	return err
}

func init() {
	rootCmd.AddCommand(reposCmd)
	addStateFlags(reposCmd)
	reposCmd.Flags().String("output", "table", "Output format: table or json")
	reposCmd.Flags().Bool("progress", false, "Show a progress bar while fetching")
}
