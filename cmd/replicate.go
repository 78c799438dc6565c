package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/RichMorin/dtags/internal/replicate"
	"github.com/RichMorin/dtags/internal/tagtable"
	"github.com/RichMorin/dtags/internal/types"
)

var replicateCmd = &cobra.Command{
	Use:     "replicate TOPIC",
	Aliases: []string{"r"},
	Short:   "Propagate a topic's tag bodies to every divergent occurrence",
	Long: `Use the tags defined in TOPIC as the source of truth and rewrite every
occurrence elsewhere whose content differs. TOPIC is a file, or file:LINE to
use only the tag opened at that exact line.

Nested tags inside a replicated body are re-expanded from the same canonical
set; nested tags outside the set are copied through verbatim. Each file is
rewritten through a temp file and atomic rename, so an error leaves the
original untouched.

It is an error for the topic itself to define a tag inconsistently; nothing
is modified in that case.

Examples:
  dtags replicate guides/install.rst        # all tags defined in the file
  dtags replicate guides/install.rst:42     # only the tag opened at line 42
  dtags replicate guides/install.rst -n     # show targets, change nothing`,
	Args: cobra.ExactArgs(1),
	RunE: runReplicate,
}

var replicateDryRun bool

func init() {
	rootCmd.AddCommand(replicateCmd)

	replicateCmd.Flags().BoolVarP(&replicateDryRun, "dry-run", "n", false, "List rewrite targets without modifying files")
}

func runReplicate(cmd *cobra.Command, args []string) error {
	file, line, err := parseTopic(args[0])
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	topicSel := (&types.Selector{}).ForTopic(file, line)
	derived, errs := s.engine.ResolveTopic(ctx, topicSel)
	if err := reportErrors(errs); err != nil {
		return err
	}

	topicTable, errs := s.engine.BuildTable(ctx, []string{file}, derived)
	if err := reportErrors(errs); err != nil {
		return err
	}

	canon, errs := s.engine.Canonical(file, topicTable)
	if err := reportErrors(errs); err != nil {
		return err
	}

	table, errs := s.engine.BuildTable(ctx, s.files, derived)
	if err := reportErrors(errs); err != nil {
		return err
	}

	targets := divergentRefs(table, canon)
	if len(targets) == 0 {
		fmt.Println("All occurrences already match the topic.")
		return nil
	}

	if replicateDryRun {
		fmt.Printf("Would rewrite %d occurrence(s):\n", len(targets))
		for _, ref := range targets {
			fmt.Printf("  %s (%s)\n", ref.Location(), ref.Tag)
		}
		return nil
	}

	if err := reportErrors(replicate.Replicate(ctx, s.log, table, canon)); err != nil {
		return err
	}
	fmt.Printf("Rewrote %d occurrence(s).\n", len(targets))
	return nil
}

// divergentRefs collects every occurrence whose identity disagrees with its
// tag's canonical definition, ordered by file then line.
func divergentRefs(table *tagtable.Table, canon map[string]*tagtable.Definition) []types.Ref {
	var out []types.Ref
	for tag, cdef := range canon {
		for _, def := range table.Definitions(tag) {
			if def.Identity == cdef.Identity {
				continue
			}
			out = append(out, def.Refs...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Line < out[j].Line
	})
	return out
}
