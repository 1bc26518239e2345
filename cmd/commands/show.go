package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xedit/xedit-cli/internal/cli"
	"github.com/xedit/xedit-cli/pkg/container"
	"github.com/xedit/xedit-cli/pkg/editor"
	"github.com/xedit/xedit-cli/pkg/models"
)

var (
	showMode string
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display a document's content",
		Long: `Display a document's content in a view mode.

Source mode prints the raw content verbatim, marker comments included.
Styled mode concatenates segment contents in order, replacing dynamic
segments with their evaluated placeholder.

Examples:
  # Styled projection (default)
  xedit show layout.xml

  # Raw source, markers included
  xedit show layout.xml --mode source

  # Works on container files too
  xedit show layout.xedit`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().StringVarP(&showMode, "mode", "m", string(models.ViewModeStyled), "View mode: styled or source")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]
	settings := cli.LoadSettingsWithDefault()

	session, err := loadSession(path, settings)
	if err != nil {
		return err
	}

	switch models.ViewMode(showMode) {
	case models.ViewModeStyled:
		session.SetMode(models.ViewModeStyled)
	case models.ViewModeSource:
		session.SetMode(models.ViewModeSource)
	default:
		return fmt.Errorf("unknown view mode: %s", showMode)
	}

	fmt.Fprintln(cmd.OutOrStdout(), session.DisplayContent())
	return nil
}

// loadSession builds an editor session around the document at path.
func loadSession(path string, settings *models.Settings) (*editor.Session, error) {
	session := editor.NewSessionWithSettings(settings)
	if err := container.LoadDocument(session.Document(), path, settings.Container.Extension); err != nil {
		return nil, err
	}
	return session, nil
}
