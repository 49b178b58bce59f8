package workspace

import "github.com/ppiankov/draftgate/internal/editor"

func editorInsert(index int, text string) editor.Command {
	return editor.InsertText{Index: index, Text: text}
}
