package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:     "check [pattern]",
	Aliases: []string{"c"},
	Short:   "Report tags whose occurrences have diverged",
	Long: `Scan the document tree and report every tag that occurs with more than
one distinct body. Variants with the fewest occurrences are listed first,
since they are the likely outliers.

The exit status is non-zero when any inconsistent tag is found, so check
works as a CI gate.

Examples:
  dtags check                # check every tag
  dtags check '^install_'    # only tags matching the pattern
  dtags check -q             # status only, no report`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var (
	checkFormat string
	checkQuiet  bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "table", "Output format (table|json|yaml)")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Suppress the report, keep the exit status")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	sel, err := buildSelector(args)
	if err != nil {
		return err
	}
	sel.ConsistencyOnly = true
	sel.Quiet = checkQuiet

	table, errs := s.engine.BuildTable(cmd.Context(), s.files, sel)
	if err := reportErrors(errs); err != nil {
		return err
	}

	defs := table.DefinitionsMatching(sel)
	if len(defs) == 0 {
		if !sel.Quiet {
			fmt.Println("All tags consistent.")
		}
		return nil
	}

	if !sel.Quiet {
		if err := renderDefs(checkFormat, defs, false); err != nil {
			return err
		}
	}

	inconsistent := make(map[string]struct{})
	for _, td := range defs {
		inconsistent[td.Tag] = struct{}{}
	}
	return fmt.Errorf("%d inconsistent tag(s)", len(inconsistent))
}
