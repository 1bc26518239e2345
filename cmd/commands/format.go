package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xedit/xedit-cli/internal/cli"
	"github.com/xedit/xedit-cli/pkg/container"
	"github.com/xedit/xedit-cli/pkg/document"
)

var (
	formatWrite bool
)

// NewFormatCommand creates the format command
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Reformat a document with 2-space XML indentation",
		Long: `Reformat a document's XML content with 2-space indentation and a
leading XML declaration. Segment marker comments are preserved.

By default the formatted content is printed to stdout. With --write
the file is rewritten in place (through the container codec when the
file carries the container extension).

Examples:
  # Print the formatted document
  xedit format layout.xml

  # Rewrite the file in place
  xedit format layout.xml --write`,
		Args: cobra.ExactArgs(1),
		RunE: runFormat,
	}

	cmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Rewrite the file instead of printing")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	path := args[0]
	settings := cli.LoadSettingsWithDefault()

	doc := document.New()
	if err := container.LoadDocument(doc, path, settings.Container.Extension); err != nil {
		return err
	}

	formatted, err := doc.FormatXML()
	if err != nil {
		return err
	}

	if !formatWrite {
		fmt.Fprint(cmd.OutOrStdout(), formatted)
		return nil
	}

	doc.SetContent(formatted)
	if err := container.SaveDocument(doc, path, settings.Container.Extension); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Formatted %s\n", path)
	return nil
}
