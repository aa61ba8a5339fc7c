package docdeck

import (
	"errors"
	"time"

	"golang.org/x/text/language"
)

// Deck is a rendered slide presentation ready to be written as PPTX.
type Deck struct {
	properties             *DocumentProperties
	presentationProperties *PresentationProperties
	layout                 SlideLayout
	language               language.Tag
	slides                 []*Slide
}

// NewDeck creates a deck over rendered slides.
func NewDeck(layout SlideLayout, slides ...*Slide) *Deck {
	return &Deck{
		properties:             NewDocumentProperties(),
		presentationProperties: NewPresentationProperties(),
		layout:                 layout,
		language:               language.English,
		slides:                 slides,
	}
}

// GetDocumentProperties returns the document properties.
func (d *Deck) GetDocumentProperties() *DocumentProperties {
	return d.properties
}

// SetDocumentProperties sets the document properties.
func (d *Deck) SetDocumentProperties(props *DocumentProperties) {
	d.properties = props
}

// GetPresentationProperties returns the presentation properties.
func (d *Deck) GetPresentationProperties() *PresentationProperties {
	return d.presentationProperties
}

// GetLayout returns the slide layout the deck was rendered for.
func (d *Deck) GetLayout() SlideLayout {
	return d.layout
}

// GetLanguage returns the BCP 47 tag of the slide text.
func (d *Deck) GetLanguage() string {
	return d.language.String()
}

// SetLanguage sets the language of the slide text from a BCP 47 tag.
func (d *Deck) SetLanguage(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return err
	}
	d.language = t
	return nil
}

// AddSlide appends a slide.
func (d *Deck) AddSlide(slide *Slide) *Slide {
	d.slides = append(d.slides, slide)
	return slide
}

// GetSlide returns a slide by index.
func (d *Deck) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(d.slides) {
		return nil, errors.New("slide index out of range")
	}
	return d.slides[index], nil
}

// GetAllSlides returns all slides.
func (d *Deck) GetAllSlides() []*Slide {
	return d.slides
}

// GetSlideCount returns the number of slides.
func (d *Deck) GetSlideCount() int {
	return len(d.slides)
}

// GetClipped returns the number of bullet items left out across all slides.
func (d *Deck) GetClipped() int {
	n := 0
	for _, s := range d.slides {
		n += s.clipped
	}
	return n
}

// DocumentProperties holds the metadata written into both output formats.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
}

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "docdeck",
		LastModifiedBy: "docdeck",
		Created:        now,
		Modified:       now,
	}
}

// SetDate sets both the created and modified time. Fixing the date makes
// repeated builds byte-identical.
func (dp *DocumentProperties) SetDate(t time.Time) *DocumentProperties {
	dp.Created = t
	dp.Modified = t
	return dp
}
