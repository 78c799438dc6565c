// Package types provides common type definitions used throughout the dtags CLI.
// This package contains shared types to avoid circular dependencies between packages.
package types

import (
	"fmt"
	"strings"
)

// Region is one delimited tag block found while scanning one file. A region's
// content holds normalized lines, including the opening and closing delimiter
// lines themselves. Regions nest; an inner region's lines also appear as
// ordinary content lines of its parent.
type Region struct {
	// Tag is the identifier following the opening marker (word characters only)
	Tag string
	// File is the path of the document the region was found in
	File string
	// StartLine is the 1-based line number of the opening delimiter
	StartLine int
	// Indent is the column offset of the opening delimiter; every line inside
	// the region must be indented at least this far
	Indent int
	// Lines holds the normalized content: the indent prefix stripped, trailing
	// whitespace removed, whitespace-only lines collapsed to empty lines
	Lines []string
}

// Content returns the normalized region text, one trailing newline per line.
func (r *Region) Content() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// Ref points at one occurrence of a tag without carrying its body.
type Ref struct {
	// Tag is the tag name
	Tag string
	// Identity is the content fingerprint of the occurrence
	Identity string
	// File is the document containing the occurrence
	File string
	// Line is the 1-based line of the opening delimiter
	Line int
}

// Location returns the occurrence site as "file:line".
func (r Ref) Location() string {
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}
