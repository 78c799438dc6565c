package cmd

import (
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:     "print [pattern]",
	Aliases: []string{"p"},
	Short:   "Print the normalized bodies of matching tags",
	Long: `Print every content variant of every matching tag, including the
normalized body text. Tags with several divergent bodies show each variant,
minority variants first.

Examples:
  dtags print ctl_run        # all variants of one tag
  dtags print -f yaml        # bodies as structured output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

var printFormat string

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().StringVarP(&printFormat, "format", "f", "table", "Output format (table|json|yaml)")
}

func runPrint(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	sel, err := buildSelector(args)
	if err != nil {
		return err
	}
	sel.CollectBodies = true

	table, errs := s.engine.BuildTable(cmd.Context(), s.files, sel)
	if err := reportErrors(errs); err != nil {
		return err
	}

	return renderDefs(printFormat, table.DefinitionsMatching(sel), true)
}
