//go:build property
// +build property

package scanner

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	dterrors "github.com/RichMorin/dtags/internal/errors"
)

// TestScannerProperties tests invariant properties of the region scanner.
func TestScannerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property 1: scanning the same text twice yields identical regions.
	properties.Property("scan determinism", prop.ForAll(
		func(tag string, body string) bool {
			text := ".. tag " + tag + "\n" + body + "\n.. end_tag\n"

			first, errs1 := Scan(text, "doc.rst", nil)
			second, errs2 := Scan(text, "doc.rst", nil)
			if len(errs1) != len(errs2) || len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i].Content() != second[i].Content() {
					return false
				}
			}
			return true
		},
		genTagName(),
		gen.AlphaString(),
	))

	// Property 2: well-formed nesting always balances; every opened region
	// is reported exactly once.
	properties.Property("nesting balance", prop.ForAll(
		func(depth int) bool {
			var sb strings.Builder
			for i := 0; i < depth; i++ {
				sb.WriteString(strings.Repeat(" ", i))
				sb.WriteString(".. tag level_")
				sb.WriteString(string(rune('a'+i)))
				sb.WriteString("\n")
			}
			for i := depth - 1; i >= 0; i-- {
				sb.WriteString(strings.Repeat(" ", i))
				sb.WriteString(".. end_tag\n")
			}

			regions, errs := Scan(sb.String(), "doc.rst", nil)
			return len(errs) == 0 && len(regions) == depth
		},
		gen.IntRange(1, 20),
	))

	// Property 3: a missing closer always produces a structural error and
	// zero regions.
	properties.Property("missing close is structural", prop.ForAll(
		func(tag string) bool {
			text := ".. tag " + tag + "\nbody\n"
			regions, errs := Scan(text, "doc.rst", nil)
			if len(regions) != 0 || len(errs) == 0 {
				return false
			}
			se, ok := errs[0].(*dterrors.ScanError)
			return ok && se.Kind == dterrors.KindStructural
		},
		genTagName(),
	))

	// Property 4: stored content never keeps leading whitespace below the
	// declared indent, and whitespace-only lines normalize to empty.
	properties.Property("indentation normalization", prop.ForAll(
		func(indent int, pad int) bool {
			prefix := strings.Repeat(" ", indent)
			text := prefix + ".. tag norm\n" +
				prefix + strings.Repeat(" ", pad) + "line\n" +
				strings.Repeat(" \t", 3) + "\n" +
				prefix + ".. end_tag\n"

			regions, _ := Scan(text, "doc.rst", nil)
			if len(regions) != 1 {
				return false
			}
			lines := regions[0].Lines
			return lines[1] == strings.Repeat(" ", pad)+"line" && lines[2] == ""
		},
		gen.IntRange(0, 8),
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}

func genTagName() gopter.Gen {
	// The length bound lives in the regex so no generated candidate gets
	// discarded.
	return gen.RegexMatch(`^[a-z][a-z0-9_]{0,19}$`)
}
