// Package docdeck renders a small document model into two static artifacts:
// a paginated document (PDF) and a slide deck (PPTX).
//
// A Document is an ordered, immutable sequence of block nodes (title,
// heading, paragraph, bullet list, table, break). PageRenderer flows it onto
// fixed-size pages; SlideRenderer places explicitly authored slides onto a
// fixed canvas. Both read colors, fonts and spacing from a Theme passed at
// call time. Writers turn the resulting pages and slides into files.
//
// See the Version variable for the current library version.
package docdeck

import (
	"fmt"
	"slices"
)

// Document is an ordered sequence of nodes. It is never modified after
// construction.
type Document struct {
	nodes []Node
}

// NewDocument creates a document from nodes. Nil nodes are rejected.
func NewDocument(nodes ...Node) (*Document, error) {
	for i, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("node %d: %w", i, ErrNilNode)
		}
	}
	return &Document{nodes: slices.Clone(nodes)}, nil
}

// Len returns the number of nodes.
func (d *Document) Len() int { return len(d.nodes) }

// At returns node i.
func (d *Document) At(i int) Node { return d.nodes[i] }

// Nodes returns a copy of the node sequence.
func (d *Document) Nodes() []Node { return slices.Clone(d.nodes) }
