package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/xedit/xedit-cli/internal/cli"
	"github.com/xedit/xedit-cli/pkg/models"
)

var (
	copyMode string
)

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <file>",
		Short: "Copy a document's display content to the clipboard",
		Long: `Copy a document's display content to the system clipboard.

The content is projected the same way 'show' prints it: styled by
default, raw source with --mode source.

Examples:
  # Copy the styled projection
  xedit copy layout.xml

  # Copy the raw source of a container file
  xedit copy layout.xedit --mode source`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip"},
		RunE:    runCopy,
	}

	cmd.Flags().StringVarP(&copyMode, "mode", "m", string(models.ViewModeStyled), "View mode: styled or source")

	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	path := args[0]
	settings := cli.LoadSettingsWithDefault()

	session, err := loadSession(path, settings)
	if err != nil {
		return err
	}

	switch models.ViewMode(copyMode) {
	case models.ViewModeStyled:
		session.SetMode(models.ViewModeStyled)
	case models.ViewModeSource:
		session.SetMode(models.ViewModeSource)
	default:
		return fmt.Errorf("unknown view mode: %s", copyMode)
	}

	content := session.DisplayContent()
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Copied %d bytes from %s\n", len(content), path)
	return nil
}
