// Package tagtable indexes tag occurrences by name and content identity.
//
// The table is the process-scoped index behind every query: tag name maps to
// content identity maps to one Definition holding that variant's body and
// every place it occurs. A tag whose occurrences all agree has exactly one
// Definition; more than one is the inconsistency the tool exists to detect.
// Tables are built fresh per invocation and never persisted.
package tagtable

import (
	"sort"

	"github.com/RichMorin/dtags/internal/types"
)

// Definition is one content variant of a tag: its identity, its normalized
// body, and every reference to that exact variant. The table exclusively owns
// its Definitions; Definitions exclusively own their reference lists.
type Definition struct {
	Identity string
	Body     string
	Refs     []types.Ref
}

// TagDefinition pairs a Definition with the tag that owns it, for queries that
// cross tag boundaries.
type TagDefinition struct {
	Tag string
	Def *Definition
}

// Table maps tag name to content identity to Definition.
type Table struct {
	tags map[string]map[string]*Definition
}

// New creates an empty table.
func New() *Table {
	return &Table{tags: make(map[string]map[string]*Definition)}
}

// Insert records one occurrence. The first occurrence of an identity carries
// the body; later ones only extend the reference list.
func (t *Table) Insert(ref types.Ref, body string) {
	defs := t.tags[ref.Tag]
	if defs == nil {
		defs = make(map[string]*Definition)
		t.tags[ref.Tag] = defs
	}
	def := defs[ref.Identity]
	if def == nil {
		def = &Definition{Identity: ref.Identity, Body: body}
		defs[ref.Identity] = def
	}
	def.Refs = append(def.Refs, ref)
}

// Tags returns every tag name in ascending lexical order.
func (t *Table) Tags() []string {
	out := make([]string, 0, len(t.tags))
	for tag := range t.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Definitions returns a tag's variants ordered by ascending reference count,
// so minority variants — the likely outliers — come first. Ties break on the
// identity string; references within a variant are ordered by file then line.
func (t *Table) Definitions(tag string) []*Definition {
	defs := t.tags[tag]
	out := make([]*Definition, 0, len(defs))
	for _, def := range defs {
		sortRefs(def.Refs)
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Refs) != len(out[j].Refs) {
			return len(out[i].Refs) < len(out[j].Refs)
		}
		return out[i].Identity < out[j].Identity
	})
	return out
}

// Consistent reports whether every occurrence of tag shares one identity.
// Unknown tags are vacuously consistent.
func (t *Table) Consistent(tag string) bool {
	return len(t.tags[tag]) <= 1
}

// Inconsistent returns the tags with more than one identity, sorted.
func (t *Table) Inconsistent() []string {
	var out []string
	for tag, defs := range t.tags {
		if len(defs) > 1 {
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// DefinitionsMatching returns every (tag, definition) pair the selector
// accepts, in table order. With ConsistencyOnly set, only divergent tags
// contribute.
func (t *Table) DefinitionsMatching(sel *types.Selector) []TagDefinition {
	var out []TagDefinition
	for _, tag := range t.Tags() {
		if !sel.MatchesTag(tag) {
			continue
		}
		if sel != nil && sel.ConsistencyOnly && t.Consistent(tag) {
			continue
		}
		for _, def := range t.Definitions(tag) {
			out = append(out, TagDefinition{Tag: tag, Def: def})
		}
	}
	return out
}

// RefsMatching flattens DefinitionsMatching into plain references, preserving
// table order.
func (t *Table) RefsMatching(sel *types.Selector) []types.Ref {
	var out []types.Ref
	for _, td := range t.DefinitionsMatching(sel) {
		out = append(out, td.Def.Refs...)
	}
	return out
}

// Count returns the number of distinct tag names.
func (t *Table) Count() int {
	return len(t.tags)
}

func sortRefs(refs []types.Ref) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].File != refs[j].File {
			return refs[i].File < refs[j].File
		}
		return refs[i].Line < refs[j].Line
	})
}
