package types

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilSelectorMatchesEverything(t *testing.T) {
	var sel *Selector
	assert.True(t, sel.Matches(&Region{Tag: "foo"}))
	assert.True(t, sel.MatchesTag("foo"))
}

func TestZeroSelectorMatchesEverything(t *testing.T) {
	sel := &Selector{}
	assert.True(t, sel.Matches(&Region{Tag: "anything", StartLine: 17}))
}

func TestPatternFilter(t *testing.T) {
	sel := &Selector{Pattern: regexp.MustCompile("^ssl_")}
	assert.True(t, sel.Matches(&Region{Tag: "ssl_verify_mode"}))
	assert.False(t, sel.Matches(&Region{Tag: "node_name"}))
}

func TestTagSetFilter(t *testing.T) {
	sel := (&Selector{}).WithTags([]string{"foo", "bar"})
	assert.True(t, sel.MatchesTag("foo"))
	assert.True(t, sel.MatchesTag("bar"))
	assert.False(t, sel.MatchesTag("baz"))
}

func TestTopicLineFilter(t *testing.T) {
	sel := (&Selector{}).ForTopic("docs/a.rst", 12)
	assert.True(t, sel.Matches(&Region{Tag: "foo", StartLine: 12}))
	assert.False(t, sel.Matches(&Region{Tag: "foo", StartLine: 13}))
	// Name-only queries ignore the line pin.
	assert.True(t, sel.MatchesTag("foo"))
}

func TestWithTagsDropsTopic(t *testing.T) {
	sel := (&Selector{CollectBodies: true}).ForTopic("docs/a.rst", 12)
	derived := sel.WithTags([]string{"foo"})

	assert.Empty(t, derived.Topic)
	assert.Zero(t, derived.TopicLine)
	assert.True(t, derived.CollectBodies, "flags carry over")

	// The original is untouched.
	assert.Equal(t, "docs/a.rst", sel.Topic)
	assert.Equal(t, 12, sel.TopicLine)
}

func TestRefLocation(t *testing.T) {
	ref := Ref{Tag: "foo", File: "docs/a.rst", Line: 7}
	assert.Equal(t, "docs/a.rst:7", ref.Location())
}

func TestRegionContent(t *testing.T) {
	r := &Region{Lines: []string{".. tag foo", "body", ".. end_tag"}}
	assert.Equal(t, ".. tag foo\nbody\n.. end_tag\n", r.Content())
}
