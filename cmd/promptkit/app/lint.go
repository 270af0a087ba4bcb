package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anon987654321/promptkit/internal/cmd/emoji"
	"github.com/anon987654321/promptkit/internal/cmd/output"
	"github.com/anon987654321/promptkit/pkg/conventions"
	"github.com/anon987654321/promptkit/pkg/document"
)

// NewLintCommand creates the lint command.
func (a *App) NewLintCommand() *cobra.Command {
	var maxItems int

	cmd := &cobra.Command{
		Use:     "lint <file.json>",
		GroupID: groupDocuments,
		Short:   "Check a framework document against structural conventions",
		Long: `Lint checks a framework document against the structural conventions it
claims for itself: section item counts stay under the cognitive load
limit, progressive disclosure markers are present, repeated patterns
stay under the repetition threshold, and self-enforcement indicators
exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLint(cmd, args[0], maxItems)
		},
	}

	cmd.Flags().IntVar(&maxItems, "max-items", conventions.DefaultMaxItems, "item-count limit per section")

	return cmd
}

func (a *App) runLint(cmd *cobra.Command, path string, maxItems int) error {
	doc, err := document.Load(path)
	if err != nil {
		return err
	}

	checker := conventions.New()
	checker.MaxItems = maxItems
	report := checker.Check(doc)

	if err := a.render(cmd.OutOrStdout(), report, lintLines(report)); err != nil {
		return err
	}
	if !report.Passing() {
		return fmt.Errorf("convention check failed: %.0f%% compliant", report.Score()*100)
	}
	return nil
}

// lintLines renders a convention report as text lines.
func lintLines(report *conventions.Report) output.Lines {
	lines := output.Lines{
		{Symbol: emoji.Info, Text: "framework version: " + report.Version},
	}

	lines = append(lines, output.Line{
		Symbol: statusSymbol(report.CognitiveLoad.Compliant),
		Text:   output.Title("cognitive_load"),
	})
	for _, v := range report.CognitiveLoad.Violations {
		lines = append(lines, output.Line{
			Symbol: emoji.Warning,
			Text:   fmt.Sprintf("%s: %d items (limit %d, %s)", v.Location, v.Count, v.Limit, v.Severity),
			Indent: 1,
		})
	}

	lines = append(lines, output.Line{
		Symbol: statusSymbol(report.Disclosure.Compliant),
		Text: fmt.Sprintf("%s (reveal_on %d, essential_first %d, complexity %d)",
			output.Title("progressive_disclosure"),
			report.Disclosure.RevealOn, report.Disclosure.EssentialFirst, report.Disclosure.Complexity),
	})

	lines = append(lines, output.Line{
		Symbol: statusSymbol(report.Repetition.Compliant),
		Text:   output.Title("repetition"),
	})
	for _, v := range report.Repetition.Violations {
		lines = append(lines, output.Line{
			Symbol: emoji.Warning,
			Text:   fmt.Sprintf("%s: %d occurrences (threshold %d, %s)", v.Pattern, v.Occurrences, v.Threshold, v.Severity),
			Indent: 1,
		})
	}

	lines = append(lines, output.Line{
		Symbol: statusSymbol(report.SelfEnforcement.Compliant),
		Text:   output.Title("self_enforcement"),
	})
	for _, s := range report.SelfEnforcement.Suggestions {
		lines = append(lines, output.Line{Symbol: emoji.Info, Text: s, Indent: 1})
	}

	lines = append(lines, output.Line{
		Symbol: statusSymbol(report.Passing()),
		Text:   fmt.Sprintf("compliance: %.0f%%", report.Score()*100),
	})
	return lines
}
