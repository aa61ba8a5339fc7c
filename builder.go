package docdeck

import (
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/VantageDataChat/docdeck/content"
)

// DocumentBuilder assembles a Document node by node. Methods chain; the
// first construction error is kept and returned by Build, later calls are
// ignored.
type DocumentBuilder struct {
	nodes []Node
	err   error
}

// NewDocumentBuilder creates an empty builder.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

func (b *DocumentBuilder) add(n Node, err error) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = fmt.Errorf("node %d: %w", len(b.nodes), err)
		return b
	}
	b.nodes = append(b.nodes, n)
	return b
}

// Title appends the document title. subtitle may be empty.
func (b *DocumentBuilder) Title(text, subtitle string) *DocumentBuilder {
	return b.add(NewTitle(nfc(text), nfc(subtitle)), nil)
}

// Heading appends a heading of the given level.
func (b *DocumentBuilder) Heading(level int, text string) *DocumentBuilder {
	h, err := NewHeading(level, nfc(text))
	return b.add(h, err)
}

// Paragraph appends a justified body paragraph.
func (b *DocumentBuilder) Paragraph(text string) *DocumentBuilder {
	return b.add(NewParagraph(nfc(text)), nil)
}

// Lead appends a large centered line.
func (b *DocumentBuilder) Lead(text string) *DocumentBuilder {
	return b.add(NewToneParagraph(nfc(text), ToneLead), nil)
}

// Note appends a small muted centered line.
func (b *DocumentBuilder) Note(text string) *DocumentBuilder {
	return b.add(NewToneParagraph(nfc(text), ToneNote), nil)
}

// Code appends preformatted text. Line breaks and indentation are kept.
func (b *DocumentBuilder) Code(text string) *DocumentBuilder {
	return b.add(NewToneParagraph(nfc(text), ToneCode), nil)
}

// Bullets appends an unordered list.
func (b *DocumentBuilder) Bullets(items ...string) *DocumentBuilder {
	l, err := NewBulletList(nfcAll(items)...)
	return b.add(l, err)
}

// Numbered appends a list numbered from 1.
func (b *DocumentBuilder) Numbered(items ...string) *DocumentBuilder {
	l, err := NewNumberedList(nfcAll(items)...)
	return b.add(l, err)
}

// Table appends a table. Column widths are optional and given in inches.
func (b *DocumentBuilder) Table(header []string, rows [][]string, widthsInches ...float64) *DocumentBuilder {
	normRows := make([][]string, len(rows))
	for i, row := range rows {
		normRows[i] = nfcAll(row)
	}
	t, err := NewTable(nfcAll(header), normRows)
	if err == nil && len(widthsInches) > 0 {
		widths := make([]float64, len(widthsInches))
		for i, w := range widthsInches {
			widths[i] = InchToPoint(w)
		}
		t, err = t.WithColumnWidths(widths...)
	}
	return b.add(t, err)
}

// Break appends an explicit page boundary.
func (b *DocumentBuilder) Break() *DocumentBuilder {
	return b.add(NewBreak(), nil)
}

// Err returns the first construction error, if any.
func (b *DocumentBuilder) Err() error { return b.err }

// Build returns the assembled document.
func (b *DocumentBuilder) Build() (*Document, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewDocument(b.nodes...)
}

// BuildReport builds the technical report document: a title page, a table
// of contents, one page run per numbered section, and a closing note. It is
// a pure function of rep.
func BuildReport(rep *content.Report) (*Document, error) {
	if rep == nil {
		return nil, fmt.Errorf("report is nil")
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}

	b := NewDocumentBuilder()

	b.Title(rep.Title, rep.Subtitle)
	if rep.Lead != "" {
		b.Lead(rep.Lead)
	}
	if stamp := versionStamp(rep.Version, rep.Date); stamp != "" {
		b.Note(stamp)
	}
	b.Break()

	if rep.Contents != "" {
		b.Heading(1, rep.Contents)
		for i, s := range rep.Sections {
			b.Paragraph(sectionTitle(i, s.Title))
		}
		b.Break()
	}

	for i, s := range rep.Sections {
		if i > 0 {
			b.Break()
		}
		b.Heading(1, sectionTitle(i, s.Title))
		for j, blk := range s.Blocks {
			if err := addBlock(b, blk); err != nil {
				return nil, fmt.Errorf("section %d block %d: %w", i+1, j+1, err)
			}
		}
	}

	if rep.Closing != "" {
		b.Note(rep.Closing)
	}
	return b.Build()
}

func addBlock(b *DocumentBuilder, blk content.Block) error {
	kind, err := blk.Kind()
	if err != nil {
		return err
	}
	switch kind {
	case content.BlockParagraph:
		b.Paragraph(blk.Paragraph)
	case content.BlockCode:
		b.Code(blk.Code)
	case content.BlockSubheading:
		b.Heading(2, blk.Subheading)
	case content.BlockBullets:
		b.Bullets(blk.Bullets...)
	case content.BlockNumbered:
		b.Numbered(blk.Numbered...)
	case content.BlockTable:
		b.Table(blk.Table.Header, blk.Table.Rows, blk.Table.Widths...)
	}
	return b.Err()
}

func sectionTitle(i int, title string) string {
	return strconv.Itoa(i+1) + ". " + title
}

func versionStamp(version, date string) string {
	switch {
	case version != "" && date != "":
		return "Version " + version + " | " + date
	case version != "":
		return "Version " + version
	default:
		return date
	}
}

func nfc(s string) string {
	return norm.NFC.String(s)
}

func nfcAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = nfc(s)
	}
	return out
}
