package literal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `-- Part Properties
-- Class: Part
-- Name: Baseplate
-- Referent: RBX1A2B
-- Edit values below; header lines are ignored on rebuild.

Anchored = true
Name = "Baseplate"
Size = {
    X = 4,
    Y = 1,
    Z = 2,
}
`

func TestRender(t *testing.T) {
	got := Render(Header{Class: "Part", Name: "Baseplate", Referent: "RBX1A2B"}, []Assignment{
		{Name: "Anchored", Literal: "true"},
		{Name: "Name", Literal: `"Baseplate"`},
		{Name: "Size", Literal: "{\n    X = 4,\n    Y = 1,\n    Z = 2,\n}"},
	})

	assert.Equal(t, sampleFile, got)
}

func TestRender_HeaderStaysOnOneLine(t *testing.T) {
	got := Render(Header{Class: "Part", Name: "two\nlines", Referent: "R", Hidden: 2}, nil)

	assert.Contains(t, got, "-- Name: two lines\n")
	assert.Contains(t, got, "-- 2 other properties")

	assignments, errs := Split(got)
	assert.Empty(t, assignments)
	assert.Empty(t, errs)
}

func TestSplit(t *testing.T) {
	assignments, errs := Split(sampleFile)
	require.Empty(t, errs)

	want := []Assignment{
		{Name: "Anchored", Literal: "true", Line: 7},
		{Name: "Name", Literal: `"Baseplate"`, Line: 8},
		{Name: "Size", Literal: "{\n    X = 4,\n    Y = 1,\n    Z = 2,\n}", Line: 9},
	}

	if diff := cmp.Diff(want, assignments); diff != "" {
		t.Errorf("Split() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_CommentsAndQuotes(t *testing.T) {
	text := strings.Join([]string{
		`Name = "a -- not a comment" -- trailing comment`,
		`Label = "brace { inside"`,
		`Quote = "say \"hi\" -- still text"`,
		`Size = { X = 1, Y = 2, -- inline`,
		`  Z = 3 }`,
		"Crlf = 1\r",
	}, "\n")

	assignments, errs := Split(text)
	require.Empty(t, errs)
	require.Len(t, assignments, 5)

	assert.Equal(t, `"a -- not a comment"`, assignments[0].Literal)
	assert.Equal(t, `"brace { inside"`, assignments[1].Literal)
	assert.Equal(t, `"say \"hi\" -- still text"`, assignments[2].Literal)
	assert.Equal(t, "{ X = 1, Y = 2,\n  Z = 3 }", assignments[3].Literal)
	assert.Equal(t, "1", assignments[4].Literal)
}

func TestSplit_ReportsBadLinesAndContinues(t *testing.T) {
	text := "Anchored = true\n" +
		"this line is junk\n" +
		"1abc = 2\n" +
		"Empty =\n" +
		"Transparency = 0.5\n" +
		"Size = {\n  X = 1,\n"

	assignments, errs := Split(text)

	require.Len(t, assignments, 2)
	assert.Equal(t, "Anchored", assignments[0].Name)
	assert.Equal(t, "Transparency", assignments[1].Name)

	require.Len(t, errs, 4)
	assert.Equal(t, 2, errs[0].Line)
	assert.Equal(t, 3, errs[1].Line)
	assert.Equal(t, 4, errs[2].Line)
	assert.Equal(t, 6, errs[3].Line)
	assert.Contains(t, errs[3].Error(), "unterminated")
}

func TestDedupe(t *testing.T) {
	kept, overridden := Dedupe([]Assignment{
		{Name: "A", Literal: "1", Line: 1},
		{Name: "B", Literal: "2", Line: 2},
		{Name: "A", Literal: "3", Line: 3},
	})

	assert.Equal(t, []Assignment{{Name: "B", Literal: "2", Line: 2}, {Name: "A", Literal: "3", Line: 3}}, kept)
	assert.Equal(t, []Assignment{{Name: "A", Literal: "1", Line: 1}}, overridden)
}

func TestIsName(t *testing.T) {
	for _, s := range []string{"Name", "_x", "Size2", "BrickColor"} {
		assert.True(t, IsName(s), s)
	}

	for _, s := range []string{"", "2x", "a b", "a-b", "é"} {
		assert.False(t, IsName(s), s)
	}
}
