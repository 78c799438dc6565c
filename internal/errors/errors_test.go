package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ScanError
		want string
	}{
		{
			name: "with line",
			err:  Structural("docs/a.rst", 7, "foo", "missing end_tag for %q", "foo"),
			want: `docs/a.rst:7: structural: missing end_tag for "foo"`,
		},
		{
			name: "file only",
			err:  Consistency("docs/a.rst", "foo", "2 variants of %q", "foo"),
			want: `docs/a.rst: consistency: 2 variants of "foo"`,
		},
		{
			name: "no location",
			err:  Lookup("", 0, "no occurrences of tag %q", "foo"),
			want: `lookup: no occurrences of tag "foo"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "structural", KindStructural.String())
	assert.Equal(t, "format", KindFormat.String())
	assert.Equal(t, "consistency", KindConsistency.String())
	assert.Equal(t, "lookup", KindLookup.String())
	assert.Equal(t, "stale index", KindStaleIndex.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestFatal(t *testing.T) {
	assert.False(t, Format("a.rst", 3, "foo", "bad indent").Fatal())
	assert.True(t, Structural("a.rst", 3, "foo", "orphan close").Fatal())
	assert.True(t, StaleIndex("a.rst", 3, "foo", "moved").Fatal())
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasErrors())
	assert.Empty(t, c.Errors())

	c.Add(nil)
	assert.False(t, c.HasErrors(), "nil errors are ignored")

	first := Format("b.rst", 2, "foo", "under-indented line")
	second := Structural("a.rst", 9, "bar", "missing end_tag")
	c.Add(first)
	c.AddAll([]error{nil, second})

	assert.True(t, c.HasErrors())
	assert.Equal(t, []error{first, second}, c.Errors(), "insertion order")
	assert.Equal(t, []string{
		"a.rst:9: structural: missing end_tag",
		"b.rst:2: format: under-indented line",
	}, c.Messages(), "messages sort for stable reporting")
}

func TestErrorsReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.Add(Lookup("a.rst", 0, "missing"))

	got := c.Errors()
	got[0] = nil
	assert.NotNil(t, c.Errors()[0])
}
