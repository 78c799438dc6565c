// Package cmd provides the command-line interface for dtags.
//
// This package implements all CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - check: Report tags whose occurrences have diverged
//   - list: List tags with variant and occurrence counts
//   - print: Print the normalized bodies of matching tags
//   - whereis: Show every occurrence of matching tags
//   - replicate: Propagate a topic's tag bodies tree-wide
//   - rename: Rename a tag across the whole tree
//   - watch: Re-run the consistency check on file changes
//   - version: Show version information
//
// # Command Examples
//
//	// Consistency report for every tag
//	dtags check
//
//	// Occurrences of tags matching a pattern, as JSON
//	dtags whereis '^install_' --format json
//
//	// Use one file's definitions as the source of truth
//	dtags replicate guides/install.rst
//
//	// Only the tag opened at a specific line
//	dtags replicate guides/install.rst:42
//
// Commands read the document roots from .dtags.yml (or DTAGS_-prefixed
// environment variables), build a fresh tag index per invocation, and render
// the engine's results; all file rewriting happens in the replicate engine.
package cmd
