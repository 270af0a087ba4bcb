package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anon987654321/promptkit/internal/cmd/emoji"
	"github.com/anon987654321/promptkit/internal/cmd/output"
	"github.com/anon987654321/promptkit/internal/treecheck"
	"github.com/anon987654321/promptkit/pkg/logging"
)

// NewValidateCommand creates the validate command.
func (a *App) NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "validate [dir]",
		GroupID: groupRepository,
		Short:   "Validate the repository layout and its documents",
		Long: `Validate runs every repository check: the framework configurations
exist and parse with no cross-reference markers left, the module and
plugin documents are present, the Rails application tree holds its key
files, the generator scripts exist, and the report documents are in
place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return a.runValidate(cmd, dir)
		},
	}
}

func (a *App) runValidate(cmd *cobra.Command, dir string) error {
	ctx := logging.WithPath(cmd.Context(), dir)
	logging.Ctx(ctx).Debug().Msg("Validating repository")

	result := treecheck.NewRunner(dir).Run()
	logging.Ctx(ctx).Info().
		Int("sections", len(result.Sections)).
		Int("failed", result.Failed()).
		Msg("Repository validated")

	if err := a.render(cmd.OutOrStdout(), result, validateLines(result)); err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("validation failed: %d of %d sections have failures",
			result.Failed(), len(result.Sections))
	}
	return nil
}

// validateLines renders a validation result as text lines.
func validateLines(result *treecheck.Result) output.Lines {
	var lines output.Lines
	for i := range result.Sections {
		section := &result.Sections[i]
		lines = append(lines, output.Line{Text: output.Title(section.Name)})
		for _, item := range section.Items {
			text := item.Label
			if item.Detail != "" {
				text += ": " + item.Detail
			}
			lines = append(lines, output.Line{
				Symbol: statusSymbol(item.OK),
				Text:   text,
				Indent: 1,
			})
		}
	}

	if result.OK() {
		lines = append(lines, output.Line{Symbol: emoji.Success, Text: "all sections passed"})
	} else {
		lines = append(lines, output.Line{
			Symbol: emoji.Error,
			Text:   fmt.Sprintf("%d of %d sections failed", result.Failed(), len(result.Sections)),
		})
	}
	return lines
}
