package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/RichMorin/dtags/internal/replicate"
	"github.com/RichMorin/dtags/internal/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename TOPIC NEWNAME",
	Short: "Rename a tag across the whole document tree",
	Long: `Rename the tag defined at TOPIC to NEWNAME in every file. TOPIC is a
file, or file:LINE when the file defines more than one tag. Only the opening
delimiter lines change; bodies and closing delimiters are untouched.

The rename is tree-wide so no occurrence is left behind under the old name.

Examples:
  dtags rename guides/install.rst new_name
  dtags rename guides/install.rst:42 new_name`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

var tagNamePattern = regexp.MustCompile(`^\w+$`)

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	file, line, err := parseTopic(args[0])
	if err != nil {
		return err
	}
	newName := args[1]
	if !tagNamePattern.MatchString(newName) {
		return fmt.Errorf("invalid tag name %q: word characters only", newName)
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

	if len(derived.Tags) != 1 {
		return fmt.Errorf("topic %s names %d tags; pin one with file:LINE", args[0], len(derived.Tags))
	}
	var oldName string
	for tag := range derived.Tags {
		oldName = tag
	}
	if oldName == newName {
		return fmt.Errorf("tag is already named %q", newName)
	}

	table, errs := s.engine.BuildTable(ctx, s.files, derived)
	if err := reportErrors(errs); err != nil {
		return err
	}

	refs := table.RefsMatching(derived)
	if err := reportErrors(replicate.Rename(ctx, s.log, table, oldName, newName)); err != nil {
		return err
	}
	fmt.Printf("Renamed %q to %q in %d occurrence(s).\n", oldName, newName, len(refs))
	return nil
}
