package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anon987654321/promptkit/internal/cmd/emoji"
	"github.com/anon987654321/promptkit/internal/cmd/output"
	"github.com/anon987654321/promptkit/internal/gitclean"
	"github.com/anon987654321/promptkit/pkg/logging"
)

// maxListedBranches caps the branch names echoed in summaries.
const maxListedBranches = 10

// NewBranchesCommand creates the branches command group.
func (a *App) NewBranchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branches",
		GroupID: groupRepository,
		Short:   "Manage remote branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(a.newBranchesCleanCommand())
	return cmd
}

func (a *App) newBranchesCleanCommand() *cobra.Command {
	var (
		remote string
		prefix string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete stale remote branches by prefix",
		Long: `Clean lists the remote branches whose names start with the prefix and
deletes each one from the remote, then prunes stale tracking refs.
Deletion failures do not stop the batch; the summary reports every
outcome.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBranchesClean(cmd, remote, prefix, dryRun)
		},
	}

	cmd.Flags().StringVar(&remote, "remote", defaultString(a.config.Remote, "origin"), "git remote to clean")
	cmd.Flags().StringVar(&prefix, "prefix", defaultString(a.config.BranchPrefix, gitclean.DefaultPrefix), "branch name prefix to match")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list matching branches without deleting")

	return cmd
}

func (a *App) runBranchesClean(cmd *cobra.Command, remote, prefix string, dryRun bool) error {
	ctx := logging.WithOperation(cmd.Context(), "branch cleanup")
	client := gitclean.New(remote, prefix)

	if dryRun {
		branches, err := client.ListBranches(ctx)
		if err != nil {
			return err
		}
		lines := output.Lines{
			{Symbol: emoji.Info, Text: fmt.Sprintf("%d branches match %s (dry run)", len(branches), prefix)},
		}
		for _, name := range limitNames(branches, maxListedBranches) {
			lines = append(lines, output.Line{Symbol: emoji.Optional, Text: name, Indent: 1})
		}
		return a.render(cmd.OutOrStdout(), branches, lines)
	}

	logging.Ctx(ctx).Info().Str("remote", remote).Str("prefix", prefix).Msg("Cleaning remote branches")

	summary, err := client.CleanAll(ctx)
	if err != nil {
		return err
	}
	if summary.PruneErr != nil {
		logging.Ctx(ctx).Warn().Err(summary.PruneErr).Msg("Failed to prune tracking refs")
	}

	if err := a.render(cmd.OutOrStdout(), summary, cleanLines(summary)); err != nil {
		return err
	}
	if !summary.OK() {
		return fmt.Errorf("branch cleanup incomplete: %d of %d deletions failed",
			len(summary.Failed), len(summary.Found))
	}
	return nil
}

// cleanLines renders a cleanup summary as text lines.
func cleanLines(summary *gitclean.Summary) output.Lines {
	lines := output.Lines{
		{Symbol: emoji.Info, Text: fmt.Sprintf("found: %d", len(summary.Found))},
	}
	for _, name := range limitNames(summary.Deleted, maxListedBranches) {
		lines = append(lines, output.Line{Symbol: emoji.Success, Text: name, Indent: 1})
	}
	for _, failure := range summary.Failed {
		lines = append(lines, output.Line{
			Symbol: emoji.Error,
			Text:   fmt.Sprintf("%s: %v", failure.Branch, failure.Err),
			Indent: 1,
		})
	}
	lines = append(lines, output.Line{
		Symbol: statusSymbol(summary.OK()),
		Text:   fmt.Sprintf("deleted %d, failed %d", len(summary.Deleted), len(summary.Failed)),
	})
	return lines
}

// defaultString returns value, or fallback when value is empty.
func defaultString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
