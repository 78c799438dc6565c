package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/RichMorin/dtags/internal/tagtable"
	"github.com/RichMorin/dtags/internal/types"
)

// refView is the serializable shape of one occurrence.
type refView struct {
	Tag      string `json:"tag" yaml:"tag"`
	Identity string `json:"identity" yaml:"identity"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
}

// defView is the serializable shape of one content variant.
type defView struct {
	Tag      string    `json:"tag" yaml:"tag"`
	Identity string    `json:"identity" yaml:"identity"`
	Refs     []refView `json:"refs" yaml:"refs"`
	Body     string    `json:"body,omitempty" yaml:"body,omitempty"`
}

func refViews(refs []types.Ref) []refView {
	out := make([]refView, len(refs))
	for i, ref := range refs {
		out[i] = refView{Tag: ref.Tag, Identity: ref.Identity, File: ref.File, Line: ref.Line}
	}
	return out
}

func defViews(defs []tagtable.TagDefinition, withBodies bool) []defView {
	out := make([]defView, len(defs))
	for i, td := range defs {
		view := defView{
			Tag:      td.Tag,
			Identity: td.Def.Identity,
			Refs:     refViews(td.Def.Refs),
		}
		if withBodies {
			view.Body = td.Def.Body
		}
		out[i] = view
	}
	return out
}

func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(v)
}

// renderRefs prints occurrences in the requested format.
func renderRefs(format string, refs []types.Ref) error {
	switch strings.ToLower(format) {
	case "json":
		return renderJSON(refViews(refs))
	case "yaml":
		return renderYAML(refViews(refs))
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "FILE\tLINE\tTAG\tIDENTITY")
		for _, ref := range refs {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", ref.File, ref.Line, ref.Tag, ref.Identity)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// renderDefs prints content variants in the requested format, grouped under
// their tag in table mode.
func renderDefs(format string, defs []tagtable.TagDefinition, withBodies bool) error {
	switch strings.ToLower(format) {
	case "json":
		return renderJSON(defViews(defs, withBodies))
	case "yaml":
		return renderYAML(defViews(defs, withBodies))
	case "table":
		lastTag := ""
		for _, td := range defs {
			if td.Tag != lastTag {
				fmt.Printf("%s\n", td.Tag)
				lastTag = td.Tag
			}
			fmt.Printf("  %s (%d occurrence(s))\n", td.Def.Identity, len(td.Def.Refs))
			for _, ref := range td.Def.Refs {
				fmt.Printf("    %s\n", ref.Location())
			}
			if withBodies {
				for _, line := range strings.Split(strings.TrimSuffix(td.Def.Body, "\n"), "\n") {
					fmt.Printf("    | %s\n", line)
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
