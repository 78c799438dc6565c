package replicate

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/RichMorin/dtags/internal/errors"
	"github.com/RichMorin/dtags/internal/logging"
	"github.com/RichMorin/dtags/internal/scanner"
	"github.com/RichMorin/dtags/internal/tagtable"
	"github.com/RichMorin/dtags/internal/types"
)

// Rename gives every occurrence of oldTag the name newTag, tree-wide, by
// rewriting only the opening delimiter lines. Closing delimiters carry no
// name and stay as they are. Every occurrence changes the same way, so a
// consistent tag is still consistent after the rename.
func Rename(ctx context.Context, log logging.Logger, table *tagtable.Table, oldTag, newTag string) []error {
	byFile := make(map[string][]types.Ref)
	for _, def := range table.Definitions(oldTag) {
		for _, ref := range def.Refs {
			byFile[ref.File] = append(byFile[ref.File], ref)
		}
	}

	if len(byFile) == 0 {
		return []error{errors.Lookup("", 0, "no occurrences of tag %q", oldTag)}
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	collector := errors.NewCollector()
	for _, file := range files {
		refs := byFile[file]
		sort.Slice(refs, func(i, j int) bool { return refs[i].Line < refs[j].Line })

		if err := renameInFile(file, refs, oldTag, newTag); err != nil {
			collector.Add(err)
			continue
		}
		log.Info(ctx, "renamed tag", "file", file, "occurrences", len(refs),
			"from", oldTag, "to", newTag)
	}
	return collector.Errors()
}

func renameInFile(path string, targets []types.Ref, oldTag, newTag string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.StaleIndex(path, 0, oldTag, "cannot reread file: %v", err)
	}

	text := string(data)
	trailingNL := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if trailingNL {
		lines = lines[:len(lines)-1]
	}

	for _, ref := range targets {
		idx := ref.Line - 1
		if idx < 0 || idx >= len(lines) {
			return errors.StaleIndex(path, ref.Line, oldTag,
				"file has only %d lines", len(lines))
		}
		_, tag, ok := scanner.MatchOpen(lines[idx])
		if !ok || tag != oldTag {
			return errors.StaleIndex(path, ref.Line, oldTag,
				"expected %q to open here, found %q", oldTag, strings.TrimSpace(lines[idx]))
		}
		renamed, _ := scanner.RenameOpen(lines[idx], newTag)
		lines[idx] = renamed
	}

	content := strings.Join(lines, "\n")
	if trailingNL {
		content += "\n"
	}
	return atomicWrite(path, []byte(content))
}
