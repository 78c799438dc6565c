// Package discover enumerates the document files a command operates on.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"vendor":       {},
	"build":        {},
	"dist":         {},
}

// Files walks every root and returns the document files whose extension is in
// exts. Results are name-sorted so scans and reports are reproducible across
// runs. Hidden directories, directories named in excludes, and anything
// matched by a root's .gitignore are skipped.
func Files(roots, exts, excludes []string) ([]string, error) {
	extSet := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		extSet[ext] = struct{}{}
	}

	excludeSet := make(map[string]struct{}, len(excludes))
	for _, name := range excludes {
		excludeSet[name] = struct{}{}
	}

	seen := make(map[string]struct{})
	var results []string

	for _, root := range roots {
		gi := loadGitignore(root)

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}

			name := d.Name()
			if d.IsDir() {
				if path == root {
					return nil
				}
				if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if _, skip := excludeSet[name]; skip {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type()&os.ModeSymlink != 0 {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			if gi != nil && gi.MatchesPath(rel) {
				return nil
			}

			if _, ok := extSet[filepath.Ext(name)]; !ok {
				return nil
			}
			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}
			results = append(results, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(results)
	return results, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
