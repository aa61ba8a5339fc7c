package content

import (
	"errors"
	"fmt"
)

// Slide layouts.
const (
	LayoutTitle     = "title"
	LayoutContent   = "content"
	LayoutTwoColumn = "two-column"
)

// Deck is the copy of the slide presentation.
type Deck struct {
	Title    string  `yaml:"title"`
	Author   string  `yaml:"author"`
	Language string  `yaml:"language"`
	Slides   []Slide `yaml:"slides"`
}

// Slide is one authored slide. Which fields are read depends on Layout.
type Slide struct {
	Layout   string   `yaml:"layout"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle,omitempty"`
	Bullets  []string `yaml:"bullets,omitempty"`
	Left     Column   `yaml:"left,omitempty"`
	Right    Column   `yaml:"right,omitempty"`
}

// Column is one side of a two-column slide.
type Column struct {
	Label string   `yaml:"label,omitempty"`
	Items []string `yaml:"items,omitempty"`
}

// Validate checks the deck structure.
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return errors.New("deck: at least one slide is required")
	}
	for i, s := range d.Slides {
		if s.Title == "" {
			return fmt.Errorf("deck: slide %d: title is required", i+1)
		}
	}
	return nil
}
