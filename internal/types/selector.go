package types

import "regexp"

// Selector is an immutable query bundle deciding which tags and occurrences a
// command operates on. A zero Selector matches every region. Derived selectors
// are built with WithTags and ForTopic rather than mutating an existing one.
type Selector struct {
	// Pattern optionally restricts tag names; nil matches any name
	Pattern *regexp.Regexp
	// Tags optionally restricts to an explicit name set (derived from a topic);
	// nil matches any name
	Tags map[string]struct{}
	// Topic restricts scanning to a single file; empty means the whole tree
	Topic string
	// TopicLine pins the topic to the tag opened exactly at this line; 0 means
	// no line restriction
	TopicLine int

	// ListOnly reports tag names without bodies
	ListOnly bool
	// CollectBodies includes normalized bodies in results
	CollectBodies bool
	// ConsistencyOnly restricts results to tags with divergent occurrences
	ConsistencyOnly bool
	// Quiet suppresses normal output, leaving only the exit status
	Quiet bool
}

// Matches reports whether a scanned region satisfies the selector's name
// pattern, explicit tag set, and exact-line filter.
func (s *Selector) Matches(r *Region) bool {
	if s == nil {
		return true
	}
	if s.Pattern != nil && !s.Pattern.MatchString(r.Tag) {
		return false
	}
	if s.Tags != nil {
		if _, ok := s.Tags[r.Tag]; !ok {
			return false
		}
	}
	if s.TopicLine != 0 && r.StartLine != s.TopicLine {
		return false
	}
	return true
}

// MatchesTag applies only the name filters, for table-level queries where no
// region is at hand.
func (s *Selector) MatchesTag(tag string) bool {
	if s == nil {
		return true
	}
	if s.Pattern != nil && !s.Pattern.MatchString(tag) {
		return false
	}
	if s.Tags != nil {
		if _, ok := s.Tags[tag]; !ok {
			return false
		}
	}
	return true
}

// WithTags returns a copy of the selector scoped to an explicit tag-name set,
// dropping any topic restriction. This is how "operate only on the tags found
// at a topic" widens into a tree-wide query.
func (s *Selector) WithTags(names []string) *Selector {
	out := *s
	out.Topic = ""
	out.TopicLine = 0
	out.Tags = make(map[string]struct{}, len(names))
	for _, name := range names {
		out.Tags[name] = struct{}{}
	}
	return &out
}

// ForTopic returns a copy of the selector scoped to one file, optionally
// pinned to the tag starting at line.
func (s *Selector) ForTopic(file string, line int) *Selector {
	out := *s
	out.Topic = file
	out.TopicLine = line
	return &out
}
