package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xedit/xedit-cli/internal/cli"
	"github.com/xedit/xedit-cli/pkg/container"
	"github.com/xedit/xedit-cli/pkg/document"
)

// NewConvertCommand creates the convert command
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert between plain text and container files",
		Long: `Convert a document between plain text and the container format.

Both sides dispatch on the file extension: a ` + container.DefaultExtension + ` path goes
through the container codec, anything else is plain UTF-8 text. The
raw content, marker comments included, round-trips unchanged.

Examples:
  # Wrap a plain XML file into a container
  xedit convert layout.xml layout.xedit

  # Unwrap a container back to plain text
  xedit convert layout.xedit layout.xml`,
		Args: cobra.ExactArgs(2),
		RunE: runConvert,
	}

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	settings := cli.LoadSettingsWithDefault()
	ext := settings.Container.Extension

	doc := document.New()
	if err := container.LoadDocument(doc, input, ext); err != nil {
		return err
	}
	if err := container.SaveDocument(doc, output, ext); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", input, output)
	return nil
}
