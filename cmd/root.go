// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/erikdevelopment/portfolio/internal/config"
	"github.com/erikdevelopment/portfolio/internal/gateway"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	userFlag   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "A developer portfolio site with a GitHub repository browser and a blog.",
	Long: `portfolio serves a personal developer site: a hub page with a scripted
terminal, a browser over the GitHub repositories of a user and their
organizations, and a blog read from a JSON asset file.

The same data is available from the command line through the repos, browse,
blog and terminal commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if userFlag != "" {
			cfg.GitHubUser = userFlag
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "GitHub user whose repositories are shown (overrides GITHUB_USER)")
}

// newCatalogLoader validates the config and wires the GitHub gateway into a loader.
func newCatalogLoader() (*usecase.CatalogLoader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	githubGateway, err := gateway.NewGitHubGateway(cfg.APIURL, cfg.GitHubToken, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewCatalogLoader(githubGateway, cfg.GitHubUser, logger), nil
}
