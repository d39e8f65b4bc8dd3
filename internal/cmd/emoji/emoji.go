// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across commands.
package emoji

// Status symbols used in tables and summaries.
const (
	// Success marks a live link or a completed step.
	Success = "✓"

	// Error marks a dead or rejected link.
	Error = "✗"

	// Warning marks a partial outcome, such as a failed origin.
	Warning = "!"
)
