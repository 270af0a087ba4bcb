// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, check results, and user feedback.
const (
	// Success represents successful completion of an operation.
	// Used for: passing checks, recovered keys, deleted branches.
	Success = "✓"

	// Error represents failures or missing required files.
	// Used for: failed checks, parse errors, missing documents.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: medium severity findings, skipped optional checks.
	Warning = "!"

	// Optional represents optional or skipped items.
	// Used for: absent framework keys filled with placeholders, dry runs.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	// Used for: unreadable versions, unrecognized status values.
	Unknown = "?"

	// Info represents informational messages.
	// Used for: summaries, counts, context lines.
	Info = "i"
)
