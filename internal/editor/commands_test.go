package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertionPoint(t *testing.T) {
	d := FromLines([]Line{{Text: "abc"}})
	assert.Equal(t, 3, InsertionPoint(d), "unfocused editor inserts at the end")

	d.SetSelection(Range{Index: 1})
	assert.Equal(t, 1, InsertionPoint(d))
}

func TestInsertStatementCommands(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.Apply(InsertStatementCommands("Nasa reports key biographical details.", 2, InsertionPoint(d))...))
	assert.Equal(t, "Nasa reports key biographical details. [2]\n\n", d.Text())
}

func TestInsertCitationCommands(t *testing.T) {
	d := FromLines([]Line{{Text: "A claim."}})
	require.NoError(t, d.Apply(InsertCitationCommands(1, InsertionPoint(d))...))
	assert.Equal(t, "A claim. [1]\n", d.Text())
}

func TestInsertSectionCommands_Appends(t *testing.T) {
	d := FromLines([]Line{{Text: "Lead paragraph."}})

	cmds, caret := InsertSectionCommands(d, "Career")
	require.NotEmpty(t, cmds)
	require.NoError(t, d.Apply(cmds...))

	lines := d.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, Line{Text: "Career", Header: 2}, lines[1])
	assert.Equal(t, SectionPlaceholder("Career"), lines[2].Text)
	assert.Equal(t, d.Length()-1, caret)
}

func TestInsertSectionCommands_EmptyDocument(t *testing.T) {
	d := NewDocument()
	cmds, caret := InsertSectionCommands(d, "Early life")
	require.NoError(t, d.Apply(cmds...))

	assert.Equal(t, "Early life\nStart adding early life…\n", d.Text())
	assert.Equal(t, 1, d.HeadingCount())
	assert.Equal(t, d.Length()-1, caret)
}

func TestInsertSectionCommands_ExistingTitle(t *testing.T) {
	d := FromLines([]Line{{Text: "Lead."}, {Text: "Career", Header: 2}, {Text: "Body"}})

	cmds, caret := InsertSectionCommands(d, "  career ")
	assert.Empty(t, cmds)
	assert.Equal(t, 6+len("Career")+1, caret)
}

func TestInsertSectionCommands_ExistingIndentedTitle(t *testing.T) {
	d := FromLines([]Line{{Text: "Lead."}, {Text: "  Career", Header: 2}, {Text: "Body"}})

	cmds, caret := InsertSectionCommands(d, "Career")
	assert.Empty(t, cmds)
	assert.Equal(t, d.LineStart(2), caret, "caret lands on the line after the heading")
}

func TestInsertSectionCommands_ExistingTitleOnLastLine(t *testing.T) {
	d := FromLines([]Line{{Text: "Lead."}, {Text: "Career", Header: 2}})

	cmds, caret := InsertSectionCommands(d, "career")
	assert.Empty(t, cmds)
	assert.Equal(t, d.Length()-1, caret)
}

func TestInsertSectionCommands_DefaultTitle(t *testing.T) {
	d := NewDocument()
	cmds, _ := InsertSectionCommands(d, "   ")
	require.NoError(t, d.Apply(cmds...))
	assert.Equal(t, 0, FindLine(d, "new section"))
}

func TestFindLine(t *testing.T) {
	d := FromLines([]Line{{Text: "Über"}, {Text: "Awards"}})
	assert.Equal(t, 5, FindLine(d, "awards"))
	assert.Equal(t, -1, FindLine(d, "Legacy"))
}
