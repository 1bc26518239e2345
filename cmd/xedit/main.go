package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/xedit/xedit-cli/cmd/commands"
	"github.com/xedit/xedit-cli/internal/cli"
	"github.com/xedit/xedit-cli/pkg/container"
	"github.com/xedit/xedit-cli/pkg/editor"
	"github.com/xedit/xedit-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "xedit [file]",
	Short: "Structured editor for segment-tagged XML documents",
	Long: `Xedit is a terminal editor for XML-like documents partitioned into
metadata-tagged segments. Segments are declared with inline marker
comments and can be locked or computed; the editor enforces per-position
edit permissions and a hard per-line length cap, and persists documents
in a lossless container format (` + container.DefaultExtension + `).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := cli.LoadSettingsWithDefault()
		session := editor.NewSessionWithSettings(settings)

		if len(args) == 1 {
			if err := container.LoadDocument(session.Document(), args[0], settings.Container.Extension); err != nil {
				return err
			}
		}

		app := tui.NewApp(session, settings)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json, or yaml")

	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewFormatCommand())
	rootCmd.AddCommand(commands.NewSegmentsCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewCopyCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
