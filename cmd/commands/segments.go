package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xedit/xedit-cli/internal/cli"
	"github.com/xedit/xedit-cli/pkg/container"
	"github.com/xedit/xedit-cli/pkg/document"
)

// NewSegmentsCommand creates the segments command
func NewSegmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments <file>",
		Short: "List a document's segments and their metadata",
		Long: `List the segments parsed from a document's marker comments, with
their position ranges and editing metadata.

Documents without markers show the single default segment. The lock
column reflects effective lock state: dynamic segments are always
locked, whatever their locked attribute says.

Examples:
  # Show segments as a table
  xedit segments layout.xml

  # Machine-readable output
  xedit segments layout.xml -o json
  xedit segments layout.xedit -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runSegments,
	}

	return cmd
}

func runSegments(cmd *cobra.Command, args []string) error {
	path := args[0]
	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "" {
		outputFormat = string(cli.FormatText)
	}
	settings := cli.LoadSettingsWithDefault()

	doc := document.New()
	if err := container.LoadDocument(doc, path, settings.Container.Extension); err != nil {
		return err
	}

	infos := doc.SegmentsInfo()

	if cli.OutputFormat(outputFormat) != cli.FormatText {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, infos)
	}

	if len(infos) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no segments (empty document)\n", path)
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "RANGE", "LOCKED", "DYNAMIC", "2W", "CONTENT")
	for _, info := range infos {
		table.Row(
			info.ID,
			fmt.Sprintf("%d-%d", info.StartPos, info.EndPos),
			cli.BoolMark(info.IsLocked),
			cli.BoolMark(info.IsDynamic),
			cli.BoolMark(info.DoubleWidth),
			cli.TruncateString(info.Content, 40),
		)
	}
	table.Flush()

	return nil
}
