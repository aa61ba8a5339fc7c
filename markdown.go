package docdeck

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
)

// WriteMarkdown writes the document as GitHub-flavored Markdown. Headings
// shift one level down so the title is the only H1; breaks become
// horizontal rules.
func WriteMarkdown(w io.Writer, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	md := markdown.NewMarkdown(w)
	for _, n := range doc.nodes {
		switch v := n.(type) {
		case *Title:
			md.H1(v.text)
			if v.subtitle != "" {
				md.PlainText("")
				md.PlainText(markdown.Italic(v.subtitle))
			}
		case *Heading:
			switch v.level {
			case 1:
				md.H2(v.text)
			case 2:
				md.H3(v.text)
			default:
				md.H4(v.text)
			}
		case *Paragraph:
			switch v.tone {
			case ToneLead:
				md.PlainText(markdown.Bold(v.text))
			case ToneNote:
				md.PlainText(markdown.Italic(v.text))
			case ToneCode:
				md.CodeBlocks(markdown.SyntaxHighlightText, v.text)
			default:
				md.PlainText(v.text)
			}
		case *BulletList:
			if v.ordered {
				md.OrderedList(v.items...)
			} else {
				md.BulletList(v.items...)
			}
		case *Table:
			md.Table(markdown.TableSet{
				Header: v.header,
				Rows:   v.rows,
			})
		case *Break:
			md.HorizontalRule()
		}
		md.PlainText("")
	}
	return md.Build()
}
