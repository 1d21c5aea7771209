package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erikdevelopment/portfolio/internal/content"
	"github.com/erikdevelopment/portfolio/internal/server"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/erikdevelopment/portfolio/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the portfolio site over HTTP",
	Long: `Serves the hub, projects and blog pages. The repository catalog is fetched
once at startup in the background and, when a refresh schedule is configured,
again on that cron schedule. Asset files are re-read when they change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		loader, err := newCatalogLoader()
		if err != nil {
			return err
		}
		renderer, err := view.NewRenderer(view.Options{DateLayout: cfg.DateLayout, FeaturedThreshold: cfg.FeaturedThreshold})
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		assets := content.NewStore(cfg.AssetsDir, logger)

		srv := server.New(server.Options{
			User:            cfg.GitHubUser,
			Addr:            cfg.Addr,
			RefreshSchedule: cfg.RefreshSchedule,
			WatchAssets:     cfg.WatchAssets,
		}, loader, usecase.NewEngine(cfg.LanguageTag()), renderer, assets, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("Starting portfolio", zap.String("user", cfg.GitHubUser), zap.String("assets", cfg.AssetsDir))
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides PORTFOLIO_ADDR)")
}
