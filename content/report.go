package content

import (
	"errors"
	"fmt"
)

// Report is the copy of the paginated technical report.
type Report struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Lead     string    `yaml:"lead"`
	Version  string    `yaml:"version"`
	Date     string    `yaml:"date"`
	Author   string    `yaml:"author"`
	Language string    `yaml:"language"`
	Contents string    `yaml:"contents"` // table of contents heading; empty omits it
	Sections []Section `yaml:"sections"`
	Closing  string    `yaml:"closing"`
}

// Section is one numbered chapter of the report.
type Section struct {
	Title  string  `yaml:"title"`
	Blocks []Block `yaml:"blocks"`
}

// Block is one content block of a section. Exactly one field is set.
type Block struct {
	Paragraph  string   `yaml:"paragraph,omitempty"`
	Code       string   `yaml:"code,omitempty"`
	Subheading string   `yaml:"subheading,omitempty"`
	Bullets    []string `yaml:"bullets,omitempty"`
	Numbered   []string `yaml:"numbered,omitempty"`
	Table      *Table   `yaml:"table,omitempty"`
}

// Table is a grid with a header row. Widths are in inches.
type Table struct {
	Widths []float64  `yaml:"widths,omitempty"`
	Header []string   `yaml:"header"`
	Rows   [][]string `yaml:"rows"`
}

// BlockKind names the field set on a Block.
type BlockKind string

const (
	BlockParagraph  BlockKind = "paragraph"
	BlockCode       BlockKind = "code"
	BlockSubheading BlockKind = "subheading"
	BlockBullets    BlockKind = "bullets"
	BlockNumbered   BlockKind = "numbered"
	BlockTable      BlockKind = "table"
)

// ErrAmbiguousBlock is returned for a block that sets zero or several fields.
var ErrAmbiguousBlock = errors.New("block must set exactly one of paragraph, code, subheading, bullets, numbered, table")

// Kind returns the kind of the block.
func (b Block) Kind() (BlockKind, error) {
	var kinds []BlockKind
	if b.Paragraph != "" {
		kinds = append(kinds, BlockParagraph)
	}
	if b.Code != "" {
		kinds = append(kinds, BlockCode)
	}
	if b.Subheading != "" {
		kinds = append(kinds, BlockSubheading)
	}
	if b.Bullets != nil {
		kinds = append(kinds, BlockBullets)
	}
	if b.Numbered != nil {
		kinds = append(kinds, BlockNumbered)
	}
	if b.Table != nil {
		kinds = append(kinds, BlockTable)
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("%w (found %v)", ErrAmbiguousBlock, kinds)
	}
	return kinds[0], nil
}

// Validate checks the report structure. Table shapes are checked when the
// document model is built.
func (r *Report) Validate() error {
	if r.Title == "" {
		return errors.New("report: title is required")
	}
	if len(r.Sections) == 0 {
		return errors.New("report: at least one section is required")
	}
	for i, s := range r.Sections {
		if s.Title == "" {
			return fmt.Errorf("report: section %d: title is required", i+1)
		}
		for j, b := range s.Blocks {
			if _, err := b.Kind(); err != nil {
				return fmt.Errorf("report: section %d block %d: %w", i+1, j+1, err)
			}
		}
	}
	return nil
}
