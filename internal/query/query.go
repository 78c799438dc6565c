// Package query builds the tag table from a document set and answers
// selector-driven questions over it: which tags exist, where they occur, and
// which single body should stand for a tag during replication.
package query

import (
	"context"
	"os"

	"github.com/RichMorin/dtags/internal/errors"
	"github.com/RichMorin/dtags/internal/identity"
	"github.com/RichMorin/dtags/internal/logging"
	"github.com/RichMorin/dtags/internal/scanner"
	"github.com/RichMorin/dtags/internal/tagtable"
	"github.com/RichMorin/dtags/internal/types"
)

// Engine runs scans and table lookups for one command invocation.
type Engine struct {
	log logging.Logger
}

// New creates an engine logging through log.
func New(log logging.Logger) *Engine {
	return &Engine{log: log}
}

// BuildTable scans every file in order and indexes the regions matching sel.
// A structural error in one file leaves that file unindexed without touching
// the others; all errors come back together.
func (e *Engine) BuildTable(ctx context.Context, files []string, sel *types.Selector) (*tagtable.Table, []error) {
	table := tagtable.New()
	collector := errors.NewCollector()

	for _, file := range files {
		regions, errs := scanner.ScanFile(file, sel)
		collector.AddAll(errs)
		for _, r := range regions {
			body := r.Content()
			table.Insert(types.Ref{
				Tag:      r.Tag,
				Identity: identity.Hash(body),
				File:     r.File,
				Line:     r.StartLine,
			}, body)
		}
		e.log.Debug(ctx, "scanned file",
			"file", file, "regions", len(regions), "errors", len(errs))
	}

	return table, collector.Errors()
}

// ResolveTopic turns a selector naming a topic file (optionally pinned to a
// line) into one scoped to the tag names defined there, ready for a tree-wide
// query. A missing file or a line where no tag starts aborts the command.
func (e *Engine) ResolveTopic(ctx context.Context, sel *types.Selector) (*types.Selector, []error) {
	if _, err := os.Stat(sel.Topic); err != nil {
		return nil, []error{errors.Lookup(sel.Topic, 0, "topic not found: %v", err)}
	}

	regions, errs := scanner.ScanFile(sel.Topic, sel)
	for _, err := range errs {
		if se, ok := err.(*errors.ScanError); ok && se.Fatal() {
			return nil, errs
		}
	}

	seen := make(map[string]struct{})
	var names []string
	for _, r := range regions {
		if _, dup := seen[r.Tag]; dup {
			continue
		}
		seen[r.Tag] = struct{}{}
		names = append(names, r.Tag)
	}

	if len(names) == 0 {
		if sel.TopicLine != 0 {
			return nil, []error{errors.Lookup(sel.Topic, sel.TopicLine,
				"no tag starts at line %d", sel.TopicLine)}
		}
		return nil, []error{errors.Lookup(sel.Topic, 0, "no tags found in topic")}
	}

	e.log.Debug(ctx, "resolved topic", "topic", sel.Topic, "tags", len(names))
	return sel.WithTags(names), nil
}

// Canonical picks the single source-of-truth definition per tag from a table
// built over the topic alone. A tag the topic itself defines inconsistently is
// reported before anything is rewritten.
func (e *Engine) Canonical(topic string, table *tagtable.Table) (map[string]*tagtable.Definition, []error) {
	collector := errors.NewCollector()
	canon := make(map[string]*tagtable.Definition)

	for _, tag := range table.Tags() {
		defs := table.Definitions(tag)
		if len(defs) > 1 {
			collector.Add(errors.Consistency(topic, tag,
				"topic defines %q with %d different bodies", tag, len(defs)))
			continue
		}
		canon[tag] = defs[0]
	}

	if collector.HasErrors() {
		return nil, collector.Errors()
	}
	return canon, nil
}
