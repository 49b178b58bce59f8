package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/draftgate/internal/editor"
)

// blockElements start a new line in the imported document
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "blockquote": true, "pre": true,
	"section": true, "article": true, "tr": true, "dd": true, "dt": true,
	"figcaption": true, "ul": true, "ol": true, "table": true,
}

// headingLevels maps heading elements to editor heading levels
var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// FromHTML converts pasted HTML into an editor document. Block elements
// become lines, heading elements become heading lines, and scripts and
// styles are dropped.
func FromHTML(markup string) (*editor.Document, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var (
		lines  []editor.Line
		buf    strings.Builder
		header int
	)

	flush := func() {
		text := strings.Join(strings.Fields(buf.String()), " ")
		if text != "" {
			lines = append(lines, editor.Line{Text: text, Header: header})
		}
		buf.Reset()
		header = 0
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template":
				return
			case "br":
				flush()
				return
			}

			if level, ok := headingLevels[n.Data]; ok {
				flush()
				header = level
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				header = level
				flush()
				return
			}

			if blockElements[n.Data] {
				flush()
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				flush()
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	flush()

	return editor.FromLines(lines), nil
}
