package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xedit/xedit-cli/internal/cli"
	"github.com/xedit/xedit-cli/pkg/container"
	"github.com/xedit/xedit-cli/pkg/document"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document for XML well-formedness",
		Long: `Check a document for XML well-formedness.

Container files (` + container.DefaultExtension + `) are unwrapped before validation,
so the embedded raw content is what gets checked. Empty documents
are considered valid.

Examples:
  # Validate a plain XML file
  xedit validate layout.xml

  # Validate the content inside a container file
  xedit validate layout.xedit`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	settings := cli.LoadSettingsWithDefault()

	doc := document.New()
	if err := container.LoadDocument(doc, path, settings.Container.Extension); err != nil {
		return err
	}

	valid, diag := doc.ValidateXML()
	if !valid {
		return fmt.Errorf("%s: invalid XML: %s", path, diag)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid XML\n", path)
	return nil
}
