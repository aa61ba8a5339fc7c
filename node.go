package docdeck

import (
	"fmt"
	"slices"
)

// NodeKind identifies a node variant.
type NodeKind int

const (
	NodeTitle NodeKind = iota
	NodeHeading
	NodeParagraph
	NodeBulletList
	NodeTable
	NodeBreak
)

func (k NodeKind) String() string {
	switch k {
	case NodeTitle:
		return "title"
	case NodeHeading:
		return "heading"
	case NodeParagraph:
		return "paragraph"
	case NodeBulletList:
		return "bullet-list"
	case NodeTable:
		return "table"
	case NodeBreak:
		return "break"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is one block-level unit of a document. The set of implementations is
// closed: *Title, *Heading, *Paragraph, *BulletList, *Table and *Break.
// Nodes are immutable once constructed.
type Node interface {
	Kind() NodeKind
	node()
}

// Title is the document title with an optional subtitle.
type Title struct {
	text     string
	subtitle string
}

// NewTitle creates a title node.
func NewTitle(text, subtitle string) *Title {
	return &Title{text: text, subtitle: subtitle}
}

func (*Title) Kind() NodeKind { return NodeTitle }
func (*Title) node()          {}

// GetText returns the title text.
func (t *Title) GetText() string { return t.text }

// GetSubtitle returns the subtitle, or "" if there is none.
func (t *Title) GetSubtitle() string { return t.subtitle }

// Heading is a section heading. Level 1 is a section, 2 a subsection.
type Heading struct {
	level int
	text  string
}

// NewHeading creates a heading. Levels outside 1..3 are rejected.
func NewHeading(level int, text string) (*Heading, error) {
	if level < 1 || level > 3 {
		return nil, fmt.Errorf("%w: got %d", ErrHeadingLevel, level)
	}
	return &Heading{level: level, text: text}, nil
}

func (*Heading) Kind() NodeKind { return NodeHeading }
func (*Heading) node()          {}

// GetLevel returns the heading level.
func (h *Heading) GetLevel() int { return h.level }

// GetText returns the heading text.
func (h *Heading) GetText() string { return h.text }

// Tone selects how a paragraph is set.
type Tone int

const (
	ToneBody Tone = iota // justified body text
	ToneLead             // large centered line
	ToneNote             // small muted centered line
	ToneCode             // preformatted, line breaks kept
)

func (t Tone) String() string {
	switch t {
	case ToneBody:
		return "body"
	case ToneLead:
		return "lead"
	case ToneNote:
		return "note"
	case ToneCode:
		return "code"
	default:
		return fmt.Sprintf("Tone(%d)", int(t))
	}
}

// Paragraph is a run of text.
type Paragraph struct {
	text string
	tone Tone
}

// NewParagraph creates a body paragraph.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{text: text, tone: ToneBody}
}

// NewToneParagraph creates a paragraph with the given tone.
func NewToneParagraph(text string, tone Tone) *Paragraph {
	return &Paragraph{text: text, tone: tone}
}

func (*Paragraph) Kind() NodeKind { return NodeParagraph }
func (*Paragraph) node()          {}

// GetText returns the paragraph text.
func (p *Paragraph) GetText() string { return p.text }

// GetTone returns the paragraph tone.
func (p *Paragraph) GetTone() Tone { return p.tone }

// BulletList is an ordered sequence of items rendered one per line.
type BulletList struct {
	items   []string
	ordered bool
}

// NewBulletList creates an unordered list. An empty list is rejected.
func NewBulletList(items ...string) (*BulletList, error) {
	return newList(items, false)
}

// NewNumberedList creates a list whose items are numbered from 1.
func NewNumberedList(items ...string) (*BulletList, error) {
	return newList(items, true)
}

func newList(items []string, ordered bool) (*BulletList, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBulletList
	}
	return &BulletList{items: slices.Clone(items), ordered: ordered}, nil
}

func (*BulletList) Kind() NodeKind { return NodeBulletList }
func (*BulletList) node()          {}

// Len returns the number of items.
func (l *BulletList) Len() int { return len(l.items) }

// GetItem returns item i.
func (l *BulletList) GetItem(i int) string { return l.items[i] }

// GetItems returns a copy of the items.
func (l *BulletList) GetItems() []string { return slices.Clone(l.items) }

// IsOrdered reports whether items are numbered.
func (l *BulletList) IsOrdered() bool { return l.ordered }

// Marker returns the marker printed before item i.
func (l *BulletList) Marker(i int) string {
	if l.ordered {
		return fmt.Sprintf("%d.", i+1)
	}
	return "•"
}

// Table is a grid with a header row.
type Table struct {
	header []string
	rows   [][]string
	widths []float64 // points; nil means equal split
}

// NewTable creates a table. Every body row must have the header's length;
// the first row that does not is reported as a *RowLengthError.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyHeader
	}
	t := &Table{header: slices.Clone(header), rows: make([][]string, len(rows))}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &RowLengthError{Row: i, Got: len(row), Want: len(header)}
		}
		t.rows[i] = slices.Clone(row)
	}
	return t, nil
}

// WithColumnWidths returns a copy of the table with preferred column widths
// in points.
func (t *Table) WithColumnWidths(widths ...float64) (*Table, error) {
	if len(widths) != len(t.header) {
		return nil, fmt.Errorf("%w: got %d widths for %d columns", ErrColumnWidths, len(widths), len(t.header))
	}
	for _, w := range widths {
		if w <= 0 {
			return nil, fmt.Errorf("%w: width %.2f", ErrColumnWidths, w)
		}
	}
	return &Table{header: t.header, rows: t.rows, widths: slices.Clone(widths)}, nil
}

func (*Table) Kind() NodeKind { return NodeTable }
func (*Table) node()          {}

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.header) }

// NumRows returns the number of body rows.
func (t *Table) NumRows() int { return len(t.rows) }

// GetHeader returns a copy of the header row.
func (t *Table) GetHeader() []string { return slices.Clone(t.header) }

// GetRow returns a copy of body row i.
func (t *Table) GetRow(i int) []string { return slices.Clone(t.rows[i]) }

// GetColumnWidths returns the preferred column widths, or nil.
func (t *Table) GetColumnWidths() []float64 { return slices.Clone(t.widths) }

// Break is an explicit page boundary.
type Break struct{}

// NewBreak creates a break node.
func NewBreak() *Break { return &Break{} }

func (*Break) Kind() NodeKind { return NodeBreak }
func (*Break) node()          {}
