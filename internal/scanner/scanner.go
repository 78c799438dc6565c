// Package scanner turns raw document text into tagged regions.
//
// A tag opens on a line reading ".. tag NAME" and closes on a line reading
// ".. end_tag" whose marker sits at the same column as the opening one. Tags
// nest; the scanner keeps an explicit stack of partially built regions rather
// than recursing, so deeply nested fixtures cost nothing but stack slots.
// Content is normalized as it is collected: the region's indent prefix is
// stripped from every line, trailing whitespace is dropped, and lines that
// are only whitespace collapse to empty lines. The opening and closing
// delimiter lines are part of the region's own content, and an inner region's
// complete text, delimiters and body alike, also lands in every enclosing
// region as ordinary content.
package scanner

import (
	"os"
	"regexp"
	"strings"

	"github.com/RichMorin/dtags/internal/errors"
	"github.com/RichMorin/dtags/internal/types"
)

var (
	openPattern  = regexp.MustCompile(`^([ \t]*)\.\. tag (\w+)\s*$`)
	closePattern = regexp.MustCompile(`^([ \t]*)\.\. end_tag\s*$`)
)

// MatchOpen reports whether line is an opening delimiter, returning the
// marker's column and the tag name.
func MatchOpen(line string) (indent int, tag string, ok bool) {
	m := openPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// MatchClose reports whether line is a closing delimiter, returning the
// marker's column.
func MatchClose(line string) (indent int, ok bool) {
	m := closePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return len(m[1]), true
}

// RenameOpen replaces the tag name on an opening delimiter line, leaving the
// line's indentation and trailing whitespace exactly as they were.
func RenameOpen(line, newTag string) (string, bool) {
	m := openPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return "", false
	}
	return line[:m[4]] + newTag + line[m[5]:], true
}

// fileScan is the per-file scanning state: the stack of open regions
// (innermost last) and everything collected so far.
type fileScan struct {
	file  string
	sel   *types.Selector
	stack []*types.Region
	out   []*types.Region
	errs  []error
}

// Scan extracts every region of text matching sel, in order of their opening
// lines. Structural errors (a close without an open, a tag still open at end
// of input) end the scan and yield an empty region list for the file; format
// errors are recorded and scanning continues.
func Scan(text, file string, sel *types.Selector) ([]*types.Region, []error) {
	s := &fileScan{file: file, sel: sel}

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, raw := range lines {
		lineNo := i + 1

		if indent, tag, ok := MatchOpen(raw); ok {
			s.open(lineNo, indent, tag, raw)
			continue
		}
		if indent, ok := MatchClose(raw); ok {
			if fatal := s.close(lineNo, indent, raw); fatal {
				return nil, s.errs
			}
			continue
		}
		s.appendLine(lineNo, raw)
		// Lines outside any region are not part of any tag.
	}

	if len(s.stack) > 0 {
		for _, r := range s.stack {
			s.errs = append(s.errs, errors.Structural(s.file, r.StartLine, r.Tag,
				"missing end_tag for %q opened at %s:%d", r.Tag, r.File, r.StartLine))
		}
		return nil, s.errs
	}

	return s.out, s.errs
}

// ScanFile reads path and scans it. A file that cannot be read is a lookup
// error, not a structural one.
func ScanFile(path string, sel *types.Selector) ([]*types.Region, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{errors.Lookup(path, 0, "cannot read file: %v", err)}
	}
	return Scan(string(data), path, sel)
}

func (s *fileScan) top() *types.Region {
	return s.stack[len(s.stack)-1]
}

// open starts a new region. The opening line is first ordinary content of
// every enclosing region, then the first line of the new one.
func (s *fileScan) open(lineNo, indent int, tag, raw string) {
	s.appendLine(lineNo, raw)

	r := &types.Region{
		Tag:       tag,
		File:      s.file,
		StartLine: lineNo,
		Indent:    indent,
	}
	r.Lines = append(r.Lines, normalize(raw, indent))
	s.stack = append(s.stack, r)

	if s.sel.Matches(r) {
		s.out = append(s.out, r)
	}
}

// close finishes the innermost open region. The closing line becomes the last
// line of the closed region and ordinary content of every enclosing one. A
// close with nothing open is fatal; a column mismatch is recorded and
// tolerated.
func (s *fileScan) close(lineNo, indent int, raw string) (fatal bool) {
	if len(s.stack) == 0 {
		s.errs = append(s.errs, errors.Structural(s.file, lineNo, "",
			"end_tag without a matching tag"))
		return true
	}

	r := s.top()
	if indent != r.Indent {
		s.errs = append(s.errs, errors.Format(s.file, lineNo, r.Tag,
			"end_tag at column %d, but %q opened at column %d", indent, r.Tag, r.Indent))
	}

	for _, reg := range s.stack {
		reg.Lines = append(reg.Lines, normalize(raw, reg.Indent))
	}
	s.stack = s.stack[:len(s.stack)-1]
	return false
}

// appendLine stores raw in every open region, normalized against each
// region's own indent. Under-indentation is reported once, against the
// innermost region, whose requirement is the strictest on the stack.
func (s *fileScan) appendLine(lineNo int, raw string) {
	if len(s.stack) == 0 {
		return
	}
	if strings.TrimSpace(raw) == "" {
		for _, r := range s.stack {
			r.Lines = append(r.Lines, "")
		}
		return
	}
	if top := s.top(); leading(raw) < top.Indent {
		s.errs = append(s.errs, errors.Format(s.file, lineNo, top.Tag,
			"line indented %d, but %q requires at least %d", leading(raw), top.Tag, top.Indent))
	}
	for _, r := range s.stack {
		r.Lines = append(r.Lines, normalize(raw, r.Indent))
	}
}

// normalize strips trailing whitespace and up to indent columns of leading
// whitespace. Whitespace-only lines become empty lines no matter how wide.
func normalize(raw string, indent int) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	line := strings.TrimRight(raw, " \t")
	strip := leading(line)
	if strip > indent {
		strip = indent
	}
	return line[strip:]
}

// leading counts the leading whitespace columns of line.
func leading(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
