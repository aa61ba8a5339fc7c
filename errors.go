package docdeck

import (
	"errors"
	"fmt"
)

// Construction errors. Nodes are validated when they are built, never at
// render time.
var (
	ErrEmptyBulletList    = errors.New("bullet list must have at least one item")
	ErrEmptyHeader        = errors.New("table header must have at least one column")
	ErrHeadingLevel       = errors.New("heading level must be between 1 and 3")
	ErrColumnWidths       = errors.New("column widths must match the header and be positive")
	ErrNilNode            = errors.New("document node is nil")
	ErrNilSlideSpec       = errors.New("slide spec is nil")
	ErrUnknownSlideLayout = errors.New("unknown slide layout")
)

// UnknownTokenError is returned when a renderer asks the theme for a token it
// does not define. It signals a mismatch between the theme and the code
// using it and is not meant to be recovered from.
type UnknownTokenError struct {
	Kind string // "color", "font", "style" or "length"
	Name string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("theme: unknown %s token %q", e.Kind, e.Name)
}

// ContentOverflowError is returned by the page renderer when one atomic block
// is taller than an empty page.
type ContentOverflowError struct {
	Index     int // position of the node in the document
	Kind      NodeKind
	Need      float64 // points
	Available float64 // points on a fresh page
}

func (e *ContentOverflowError) Error() string {
	return fmt.Sprintf("node %d (%s) needs %.1fpt but a page holds %.1fpt",
		e.Index, e.Kind, e.Need, e.Available)
}

// RowLengthError reports a table body row whose length differs from the header.
type RowLengthError struct {
	Row  int // zero-based body row
	Got  int
	Want int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("table row %d has %d cells, header has %d", e.Row, e.Got, e.Want)
}
