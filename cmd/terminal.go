package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/erikdevelopment/portfolio/internal/content"
	"github.com/erikdevelopment/portfolio/internal/tui"
	"github.com/spf13/cobra"
)

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Plays the scripted hub terminal",
	Long: `Types the commands of the hub terminal script one character at a time and
prints their output. The script is read from terminal.json in the asset
directory, falling back to the built-in script.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, _ := cmd.Flags().GetString("prompt")
		stay, _ := cmd.Flags().GetBool("stay")

		script := content.NewStore(cfg.AssetsDir, logger).Snapshot().Script
		model := tui.NewTerminal(prompt, content.ResolveScript(script, time.Now()), !stay)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("failed to run terminal: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(terminalCmd)
	terminalCmd.Flags().String("prompt", "erik@portfolio:~$", "Prompt printed before every command")
	terminalCmd.Flags().Bool("stay", false, "Keep the terminal open after the last command")
}
