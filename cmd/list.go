package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [pattern]",
	Aliases: []string{"ls"},
	Short:   "List tags found in the document tree",
	Long: `List every tag name in the document tree, with the number of distinct
content variants and the total occurrence count.

Examples:
  dtags list                 # all tags
  dtags list 'node_.*'       # tags matching the pattern
  dtags list -f json         # machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table|json|yaml)")
}

// tagSummary is one row of list output.
type tagSummary struct {
	Tag      string `json:"tag" yaml:"tag"`
	Variants int    `json:"variants" yaml:"variants"`
	Refs     int    `json:"refs" yaml:"refs"`
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	sel, err := buildSelector(args)
	if err != nil {
		return err
	}
	sel.ListOnly = true

	table, errs := s.engine.BuildTable(cmd.Context(), s.files, sel)
	if err := reportErrors(errs); err != nil {
		return err
	}

	var rows []tagSummary
	for _, tag := range table.Tags() {
		if !sel.MatchesTag(tag) {
			continue
		}
		defs := table.Definitions(tag)
		refs := 0
		for _, def := range defs {
			refs += len(def.Refs)
		}
		rows = append(rows, tagSummary{Tag: tag, Variants: len(defs), Refs: refs})
	}

	if len(rows) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	switch strings.ToLower(listFormat) {
	case "json":
		return renderJSON(rows)
	case "yaml":
		return renderYAML(rows)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "TAG\tVARIANTS\tREFS")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%d\t%d\n", row.Tag, row.Variants, row.Refs)
		}
		fmt.Fprintf(w, "\nTotal: %d tags\n", len(rows))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", listFormat)
	}
}
