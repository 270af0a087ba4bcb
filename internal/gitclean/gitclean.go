// Package gitclean deletes stale remote branches matching a fixed name
// prefix. It shells out to git and accumulates per-branch outcomes, so a
// single failed deletion never aborts the rest of the batch.
package gitclean

import (
	"context"
	"os/exec"
	"strings"

	"github.com/anon987654321/promptkit/pkg/errors"
)

const branchRefPrefix = "refs/heads/"

// DefaultPrefix matches the autogenerated fix branches the cleanup was
// written for.
const DefaultPrefix = "copilot/fix-"

// Runner executes a git command and returns its combined output. Tests
// substitute a fake; production uses ExecRunner.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs git via os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		line := "git " + strings.Join(args, " ")
		procErr := errors.NewProcessError(line, line, strings.TrimSpace(string(output)), err)
		if exitErr, ok := err.(*exec.ExitError); ok {
			procErr.ExitCode = exitErr.ExitCode()
		}
		return string(output), procErr
	}
	return string(output), nil
}

// Client lists and deletes remote branches.
type Client struct {
	// Remote is the git remote name, e.g. "origin".
	Remote string

	// Prefix filters branch names; only branches whose name starts with
	// it are listed and deleted.
	Prefix string

	// Dir is the repository working directory. Empty means the process
	// working directory.
	Dir string

	runner Runner
}

// New creates a Client using the real git binary.
func New(remote, prefix string) *Client {
	return &Client{Remote: remote, Prefix: prefix, runner: ExecRunner{}}
}

// NewWithRunner creates a Client with a custom Runner, for tests.
func NewWithRunner(remote, prefix string, runner Runner) *Client {
	return &Client{Remote: remote, Prefix: prefix, runner: runner}
}

// ListBranches returns the remote branches matching the prefix, in the
// order the remote reports them.
func (c *Client) ListBranches(ctx context.Context) ([]string, error) {
	output, err := c.runner.Run(ctx, c.Dir, "ls-remote", "--heads", c.Remote)
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, branchRefPrefix)
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[idx+len(branchRefPrefix):])
		if name == "" || !strings.HasPrefix(name, c.Prefix) {
			continue
		}
		branches = append(branches, name)
	}
	return branches, nil
}

// DeleteBranch deletes one branch on the remote.
func (c *Client) DeleteBranch(ctx context.Context, name string) error {
	_, err := c.runner.Run(ctx, c.Dir, "push", c.Remote, "--delete", name)
	return err
}

// Prune removes local tracking refs for branches deleted on the remote.
func (c *Client) Prune(ctx context.Context) error {
	_, err := c.runner.Run(ctx, c.Dir, "remote", "prune", c.Remote)
	return err
}

// Failure records one branch that could not be deleted.
type Failure struct {
	Branch string
	Err    error
}

// Summary accumulates the outcome of a cleanup batch.
type Summary struct {
	// Found lists every branch that matched the prefix.
	Found []string

	// Deleted lists the branches removed from the remote.
	Deleted []string

	// Failed lists the branches whose deletion failed, with causes.
	Failed []Failure

	// PruneErr is the error from pruning tracking refs, if any. It does
	// not affect OK: the remote state is what matters.
	PruneErr error
}

// OK reports whether every found branch was deleted.
func (s *Summary) OK() bool {
	return len(s.Failed) == 0
}

// CleanAll lists matching branches and deletes each one, accumulating
// per-branch outcomes. Deletion failures are recorded and the batch
// continues; only a listing failure aborts. Tracking refs are pruned at
// the end when at least one branch was deleted.
func (c *Client) CleanAll(ctx context.Context) (*Summary, error) {
	branches, err := c.ListBranches(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Found: branches}
	for _, branch := range branches {
		if err := c.DeleteBranch(ctx, branch); err != nil {
			summary.Failed = append(summary.Failed, Failure{Branch: branch, Err: err})
			continue
		}
		summary.Deleted = append(summary.Deleted, branch)
	}

	if len(summary.Deleted) > 0 {
		summary.PruneErr = c.Prune(ctx)
	}
	return summary, nil
}
