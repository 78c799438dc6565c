package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whereisCmd = &cobra.Command{
	Use:     "whereis [pattern]",
	Aliases: []string{"w"},
	Short:   "Show every occurrence of matching tags",
	Long: `List the file and line of every occurrence of every matching tag,
together with its content identity, ordered by file name then line number.

Examples:
  dtags whereis server_start
  dtags whereis '.*_config' -f json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWhereis,
}

var whereisFormat string

func init() {
	rootCmd.AddCommand(whereisCmd)

	whereisCmd.Flags().StringVarP(&whereisFormat, "format", "f", "table", "Output format (table|json|yaml)")
}

func runWhereis(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	sel, err := buildSelector(args)
	if err != nil {
		return err
	}

	table, errs := s.engine.BuildTable(cmd.Context(), s.files, sel)
	if err := reportErrors(errs); err != nil {
		return err
	}

	refs := table.RefsMatching(sel)
	if len(refs) == 0 {
		fmt.Println("No occurrences found.")
		return nil
	}
	return renderRefs(whereisFormat, refs)
}
