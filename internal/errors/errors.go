// Package errors defines the error taxonomy shared by the scanner, query
// engine, and replicator, plus a collector for batch operations that visit
// many files and report every problem at once instead of stopping at the
// first one.
package errors

import (
	"fmt"
	"sort"
)

// Kind classifies a scan error.
type Kind int

const (
	// KindStructural marks malformed nesting: a closing marker with no open
	// tag, or a tag left open at end of input. Fatal for that file's scan.
	KindStructural Kind = iota
	// KindFormat marks indentation problems: a line below the region's
	// required indentation, or a closing marker whose column disagrees with
	// the opening one. Recorded, scanning continues.
	KindFormat
	// KindConsistency marks a replication source containing divergent
	// definitions of a tag that needs a single canonical body.
	KindConsistency
	// KindLookup marks a missing topic file or a line filter matching nothing.
	KindLookup
	// KindStaleIndex marks a file whose content no longer agrees with the
	// in-memory index at rewrite time.
	KindStaleIndex
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindFormat:
		return "format"
	case KindConsistency:
		return "consistency"
	case KindLookup:
		return "lookup"
	case KindStaleIndex:
		return "stale index"
	default:
		return "unknown"
	}
}

// ScanError is a located error from scanning, querying, or rewriting a
// document. Line is 0 when the error concerns a whole file.
type ScanError struct {
	File    string
	Line    int
	Tag     string
	Kind    Kind
	Message string
}

// Error implements the error interface as "file:line: kind: message".
func (e *ScanError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Kind, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Fatal reports whether the error ends its file's scan or rewrite. Format
// errors are recorded but never fatal.
func (e *ScanError) Fatal() bool {
	return e.Kind != KindFormat
}

// Structural builds a fatal nesting error.
func Structural(file string, line int, tag, format string, args ...interface{}) *ScanError {
	return &ScanError{File: file, Line: line, Tag: tag, Kind: KindStructural, Message: fmt.Sprintf(format, args...)}
}

// Format builds a non-fatal indentation error.
func Format(file string, line int, tag, format string, args ...interface{}) *ScanError {
	return &ScanError{File: file, Line: line, Tag: tag, Kind: KindFormat, Message: fmt.Sprintf(format, args...)}
}

// Consistency builds a divergent-source error.
func Consistency(file, tag, format string, args ...interface{}) *ScanError {
	return &ScanError{File: file, Tag: tag, Kind: KindConsistency, Message: fmt.Sprintf(format, args...)}
}

// Lookup builds a missing-topic error.
func Lookup(file string, line int, format string, args ...interface{}) *ScanError {
	return &ScanError{File: file, Line: line, Kind: KindLookup, Message: fmt.Sprintf(format, args...)}
}

// StaleIndex builds a file-changed-under-us error.
func StaleIndex(file string, line int, tag, format string, args ...interface{}) *ScanError {
	return &ScanError{File: file, Line: line, Tag: tag, Kind: KindStaleIndex, Message: fmt.Sprintf(format, args...)}
}

// Collector accumulates errors across a batch of files. A non-empty collector
// suppresses normal output and signals a non-zero exit to the caller.
type Collector struct {
	errs []error
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records one error; nil is ignored.
func (c *Collector) Add(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

// AddAll records every error in errs.
func (c *Collector) AddAll(errs []error) {
	for _, err := range errs {
		c.Add(err)
	}
}

// HasErrors reports whether anything was collected.
func (c *Collector) HasErrors() bool {
	return len(c.errs) > 0
}

// Errors returns the collected errors in insertion order.
func (c *Collector) Errors() []error {
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

// Messages returns the collected errors rendered as strings, sorted for
// reproducible reporting.
func (c *Collector) Messages() []string {
	out := make([]string, 0, len(c.errs))
	for _, err := range c.errs {
		out = append(out, err.Error())
	}
	sort.Strings(out)
	return out
}
