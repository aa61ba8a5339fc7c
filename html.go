package docdeck

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
)

// WriteHTML writes the document as a standalone HTML page styled from the
// theme. Breaks become print page breaks, so printing the page gives the
// same page sequence as the paginated renderer.
func WriteHTML(w io.Writer, doc *Document, theme *Theme, lang string) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if theme == nil {
		return fmt.Errorf("theme is nil")
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("html: language %q: %w", lang, err)
	}
	css, err := themeCSS(theme)
	if err != nil {
		return err
	}

	title := ""
	body := element(atom.Body)
	for _, n := range doc.nodes {
		switch v := n.(type) {
		case *Title:
			if title == "" {
				title = v.text
			}
			body.AppendChild(textElement(atom.H1, "", v.text))
			if v.subtitle != "" {
				body.AppendChild(textElement(atom.P, "subtitle", v.subtitle))
			}
		case *Heading:
			a := [...]atom.Atom{atom.H2, atom.H3, atom.H4}[v.level-1]
			body.AppendChild(textElement(a, "", v.text))
		case *Paragraph:
			switch v.tone {
			case ToneLead:
				body.AppendChild(textElement(atom.P, "lead", v.text))
			case ToneNote:
				body.AppendChild(textElement(atom.P, "note", v.text))
			case ToneCode:
				body.AppendChild(textElement(atom.Pre, "", v.text))
			default:
				body.AppendChild(textElement(atom.P, "", v.text))
			}
		case *BulletList:
			list := element(atom.Ul)
			if v.ordered {
				list = element(atom.Ol)
			}
			for _, item := range v.items {
				list.AppendChild(textElement(atom.Li, "", item))
			}
			body.AppendChild(list)
		case *Table:
			body.AppendChild(tableElement(v))
		case *Break:
			body.AppendChild(withClass(element(atom.Div), "page-break"))
		}
	}

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	head.AppendChild(textElement(atom.Title, "", title))
	style := element(atom.Style)
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	head.AppendChild(style)

	root := element(atom.Html)
	root.Attr = []html.Attribute{{Key: "lang", Val: tag.String()}}
	root.AppendChild(head)
	root.AppendChild(body)

	page := &html.Node{Type: html.DocumentNode}
	page.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page.AppendChild(root)
	return html.Render(w, page)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func withClass(n *html.Node, class string) *html.Node {
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func textElement(a atom.Atom, class, text string) *html.Node {
	n := withClass(element(a), class)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func tableElement(t *Table) *html.Node {
	table := element(atom.Table)
	if len(t.widths) > 0 {
		var total float64
		for _, w := range t.widths {
			total += w
		}
		group := element(atom.Colgroup)
		for _, w := range t.widths {
			col := element(atom.Col)
			col.Attr = []html.Attribute{{Key: "style", Val: fmt.Sprintf("width:%.1f%%", w/total*100)}}
			group.AppendChild(col)
		}
		table.AppendChild(group)
	}
	thead := element(atom.Thead)
	tr := element(atom.Tr)
	for _, h := range t.header {
		tr.AppendChild(textElement(atom.Th, "", h))
	}
	thead.AppendChild(tr)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range t.rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			tr.AppendChild(textElement(atom.Td, "", cell))
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

// themeCSS renders the stylesheet. Every value comes from a theme token.
func themeCSS(t *Theme) (string, error) {
	var firstErr error
	color := func(name string) string {
		c, err := t.Color(name)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return "#" + colorRGB(c)
	}
	length := func(name string) float64 {
		v, err := t.Length(name)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}
	style := func(name string) resolved {
		s, err := t.resolve(name)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return s
	}
	rule := func(sb *strings.Builder, selector, styleName string) {
		s := style(styleName)
		weight := "normal"
		if s.face.Bold {
			weight = "bold"
		}
		fmt.Fprintf(sb, "%s { font-family: %q, sans-serif; font-size: %dpt; font-weight: %s; color: #%s; text-align: %s; margin: %gpt 0 %gpt 0; }\n",
			selector, s.face.Family, s.Size, weight, colorRGB(s.color), cssAlign(s.Align), s.SpaceBefore, s.SpaceAfter)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "@page { margin: %gpt; }\n", length(LengthPageMargin))
	fmt.Fprintf(&sb, "body { background: %s; max-width: 46em; margin: 0 auto; line-height: 1.4; }\n", color(ColorBackground))
	rule(&sb, "h1", StyleTitle)
	rule(&sb, "p.subtitle", StyleSubtitle)
	rule(&sb, "p.lead", StyleLead)
	rule(&sb, "p.note", StyleNote)
	rule(&sb, "h2", StyleHeading1)
	rule(&sb, "h3", StyleHeading2)
	rule(&sb, "h4", StyleHeading3)
	rule(&sb, "p, li", StyleBody)
	rule(&sb, "pre", StyleCode)
	rule(&sb, "th", StyleTableHeader)
	rule(&sb, "td", StyleTableBody)
	fmt.Fprintf(&sb, "pre { background: %s; border-radius: %gpt; padding: %gpt; white-space: pre-wrap; }\n",
		color(ColorSurface), length(LengthBorderRadius), length(LengthCellPadX))
	fmt.Fprintf(&sb, "table { border-collapse: collapse; width: 100%%; background: %s; border-radius: %gpt; box-shadow: 0 %gpt %gpt rgba(0,0,0,0.1); page-break-inside: avoid; }\n",
		color(ColorSurface), length(LengthBorderRadius), length(LengthShadowOffset), 2*length(LengthShadowOffset))
	fmt.Fprintf(&sb, "th { background: %s; }\n", color(ColorPrimary))
	fmt.Fprintf(&sb, "th, td { border: %gpt solid %s; padding: %gpt %gpt; margin: 0; }\n",
		length(LengthGridWidth), color(ColorGrid), length(LengthCellPadY), length(LengthCellPadX))
	sb.WriteString(".page-break { page-break-after: always; break-after: page; }\n")
	if firstErr != nil {
		return "", firstErr
	}
	return sb.String(), nil
}

func cssAlign(a HorizontalAlignment) string {
	switch a {
	case HorizontalCenter:
		return "center"
	case HorizontalRight:
		return "right"
	case HorizontalJustify:
		return "justify"
	default:
		return "left"
	}
}
