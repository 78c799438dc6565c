// Package replicate propagates a chosen canonical body per tag to every
// divergent occurrence, rewriting files in place.
//
// Rewrites stream line by line: verbatim copy up to a target's opening
// delimiter, the original delimiter lines kept as-is, the canonical body's
// inner lines emitted at the target's column with nested tags re-expanded
// from the same canonical mapping, and the original region consumed via a
// nesting-depth counter. Each file lands on disk through a sibling temp file
// renamed over the original, so a failure mid-rewrite leaves the original
// untouched.
package replicate

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RichMorin/dtags/internal/errors"
	"github.com/RichMorin/dtags/internal/logging"
	"github.com/RichMorin/dtags/internal/scanner"
	"github.com/RichMorin/dtags/internal/tagtable"
	"github.com/RichMorin/dtags/internal/types"
)

// Replicate rewrites every reference whose identity differs from its tag's
// canonical definition. Errors are collected per file; a failed file is left
// untouched and does not block the others.
func Replicate(ctx context.Context, log logging.Logger, table *tagtable.Table, canon map[string]*tagtable.Definition) []error {
	targets := make(map[string][]types.Ref)

	tags := make([]string, 0, len(canon))
	for tag := range canon {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		want := canon[tag].Identity
		for _, def := range table.Definitions(tag) {
			if def.Identity == want {
				continue
			}
			for _, ref := range def.Refs {
				targets[ref.File] = append(targets[ref.File], ref)
			}
		}
	}

	files := make([]string, 0, len(targets))
	for file := range targets {
		files = append(files, file)
	}
	sort.Strings(files)

	collector := errors.NewCollector()
	for _, file := range files {
		refs := targets[file]
		sort.Slice(refs, func(i, j int) bool { return refs[i].Line < refs[j].Line })

		if err := rewriteFile(file, refs, canon); err != nil {
			collector.Add(err)
			continue
		}
		log.Info(ctx, "rewrote file", "file", file, "targets", len(refs))
	}
	return collector.Errors()
}

// rewriteFile replaces every target region of one file and commits the result
// atomically. Targets nested inside an already rewritten region were covered
// by the enclosing substitution and are skipped.
func rewriteFile(path string, targets []types.Ref, canon map[string]*tagtable.Definition) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.StaleIndex(path, 0, "", "cannot reread file: %v", err)
	}

	text := string(data)
	trailingNL := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if trailingNL {
		lines = lines[:len(lines)-1]
	}

	out := make([]string, 0, len(lines))
	i := 0
	for _, ref := range targets {
		start := ref.Line - 1
		if start < i {
			continue
		}
		if start >= len(lines) {
			return errors.StaleIndex(path, ref.Line, ref.Tag,
				"file has only %d lines", len(lines))
		}
		out = append(out, lines[i:start]...)
		i = start

		openLine := lines[i]
		indent, tag, ok := scanner.MatchOpen(openLine)
		if !ok || tag != ref.Tag {
			return errors.StaleIndex(path, ref.Line, ref.Tag,
				"expected %q to open here, found %q", ref.Tag, strings.TrimSpace(openLine))
		}

		out = append(out, openLine)
		out = append(out, Expand(innerLines(canon[ref.Tag].Body), indent, canon)...)

		end, ok := skipRegion(lines, i)
		if !ok {
			return errors.StaleIndex(path, ref.Line, ref.Tag,
				"missing end_tag for %q", ref.Tag)
		}
		out = append(out, lines[end])
		i = end + 1
	}
	out = append(out, lines[i:]...)

	content := strings.Join(out, "\n")
	if trailingNL {
		content += "\n"
	}
	return atomicWrite(path, []byte(content))
}

// skipRegion returns the index of the closing delimiter matching the opening
// delimiter at open, counting nested pairs.
func skipRegion(lines []string, open int) (close int, ok bool) {
	depth := 1
	for i := open + 1; i < len(lines); i++ {
		if _, _, isOpen := scanner.MatchOpen(lines[i]); isOpen {
			depth++
			continue
		}
		if _, isClose := scanner.MatchClose(lines[i]); isClose {
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// Expand reindents a canonical body's inner lines to column indent,
// substituting the canonical body of any nested tag present in canon. A
// nested tag outside the mapping is literal text and is copied through
// untouched. Recursion follows only the static structure of the bodies, never
// the table, so it terminates with the deepest physical nesting.
func Expand(inner []string, indent int, canon map[string]*tagtable.Definition) []string {
	pad := strings.Repeat(" ", indent)
	out := make([]string, 0, len(inner))

	for i := 0; i < len(inner); i++ {
		line := inner[i]
		if rel, tag, ok := scanner.MatchOpen(line); ok {
			if def, found := canon[tag]; found {
				end, closed := skipRegion(inner, i)
				if closed {
					out = append(out, pad+line)
					out = append(out, Expand(innerLines(def.Body), indent+rel, canon)...)
					out = append(out, pad+inner[end])
					i = end
					continue
				}
			}
		}
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, pad+line)
	}
	return out
}

// innerLines strips the delimiter lines from a normalized body, leaving only
// the content between them.
func innerLines(body string) []string {
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	if len(lines) < 2 {
		return nil
	}
	return lines[1 : len(lines)-1]
}

// atomicWrite lands data at path via a sibling temp file and rename, keeping
// the original's permissions. Readers never observe a half-written file.
func atomicWrite(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dtags-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
