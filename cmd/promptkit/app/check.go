package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anon987654321/promptkit/internal/cmd/emoji"
	"github.com/anon987654321/promptkit/internal/cmd/output"
	"github.com/anon987654321/promptkit/pkg/document"
	"github.com/anon987654321/promptkit/pkg/reorg"
)

// NewCheckCommand creates the check command.
func (a *App) NewCheckCommand() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:     "check <original.json> <reorganized.json>",
		GroupID: groupDocuments,
		Short:   "Verify a reorganized document lost no keys",
		Long: `Check compares the top-level keys of the original document against the
member keys recoverable from the reorganized document's groups. Every
original key except the metadata key must appear in exactly one group,
and no group member may lack a counterpart in the original or the
grouping schema: schema-listed keys filled with empty placeholders are
expected, anything else is a fabrication.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args[0], args[1], schemaPath)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "grouping schema YAML file (default: built-in schema)")

	return cmd
}

func (a *App) runCheck(cmd *cobra.Command, srcPath, dstPath, schemaPath string) error {
	schema := reorg.DefaultSchema()
	if schemaPath != "" {
		loaded, err := reorg.LoadSchema(schemaPath)
		if err != nil {
			return err
		}
		schema = loaded
	}

	src, err := document.Load(srcPath)
	if err != nil {
		return err
	}
	dst, err := document.Load(dstPath)
	if err != nil {
		return err
	}

	report := reorg.Check(src, dst, schema)
	if err := a.render(cmd.OutOrStdout(), report, checkLines(report)); err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("completeness check failed: %d missing, %d extra",
			len(report.Missing), len(report.Extra))
	}
	return nil
}

// checkLines renders a completeness report as text lines.
func checkLines(report *reorg.Report) output.Lines {
	lines := output.Lines{
		{Symbol: emoji.Info, Text: fmt.Sprintf("original keys: %d", report.OriginalCount)},
		{Symbol: emoji.Info, Text: fmt.Sprintf("recovered keys: %d", report.RecoveredCount)},
		{Symbol: emoji.Info, Text: fmt.Sprintf("groups: %d", report.GroupCount)},
	}
	if len(report.Missing) > 0 {
		lines = append(lines, output.Line{
			Symbol: emoji.Error,
			Text:   "missing: " + strings.Join(report.Missing, ", "),
		})
	}
	if len(report.Extra) > 0 {
		lines = append(lines, output.Line{
			Symbol: emoji.Error,
			Text:   "extra: " + strings.Join(report.Extra, ", "),
		})
	}
	if report.OK() {
		lines = append(lines, output.Line{Symbol: emoji.Success, Text: "all keys recovered"})
	}
	return lines
}
