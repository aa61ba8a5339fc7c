package docdeck

import (
	"fmt"
	"strings"
)

// Validate checks the deck for structural issues and returns an error
// describing all problems found, or nil if the deck is valid.
func (d *Deck) Validate() error {
	var errs []string

	if d.properties == nil {
		errs = append(errs, "document properties are nil")
	}
	if d.presentationProperties == nil {
		errs = append(errs, "presentation properties are nil")
	}
	if d.layout.Width <= 0 {
		errs = append(errs, "layout width must be positive")
	}
	if d.layout.Height <= 0 {
		errs = append(errs, "layout height must be positive")
	}
	if len(d.slides) == 0 {
		errs = append(errs, "deck must have at least one slide")
	}

	for i, slide := range d.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if slide == nil {
			errs = append(errs, prefix+": slide is nil")
			continue
		}
		for _, e := range validateSlide(slide, d.layout) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide, layout SlideLayout) []string {
	var errs []string
	for j, shape := range s.shapes {
		prefix := fmt.Sprintf("shape %d", j+1)
		if shape == nil {
			errs = append(errs, prefix+": shape is nil")
			continue
		}
		if shape.GetWidth() < 0 {
			errs = append(errs, prefix+": width is negative")
		}
		if shape.GetHeight() < 0 {
			errs = append(errs, prefix+": height is negative")
		}
		if shape.GetOffsetX() < 0 || shape.GetOffsetY() < 0 ||
			shape.GetOffsetX()+shape.GetWidth() > layout.Width ||
			shape.GetOffsetY()+shape.GetHeight() > layout.Height {
			errs = append(errs, prefix+": shape extends past the slide")
		}

		switch sh := shape.(type) {
		case *RichTextShape:
			errs = append(errs, validateParagraphs(sh.paragraphs, prefix)...)
		case *AutoShape:
			if sh.fill != nil && sh.fill.Type == FillSolid && !isValidARGB(sh.fill.Color.ARGB) {
				errs = append(errs, prefix+": fill color is invalid ARGB")
			}
		}
	}
	return errs
}

// validateParagraphs checks paragraph elements for common issues.
func validateParagraphs(paragraphs []*TextParagraph, prefix string) []string {
	var errs []string
	for i, para := range paragraphs {
		if para == nil {
			errs = append(errs, fmt.Sprintf("%s: paragraph %d is nil", prefix, i+1))
			continue
		}
		for k, elem := range para.elements {
			if elem == nil {
				errs = append(errs, fmt.Sprintf("%s: paragraph %d element %d is nil", prefix, i+1, k+1))
				continue
			}
			if tr, ok := elem.(*TextRun); ok {
				if tr.font == nil {
					errs = append(errs, fmt.Sprintf("%s: paragraph %d text run %d has nil font", prefix, i+1, k+1))
				} else if !isValidARGB(tr.font.Color.ARGB) {
					errs = append(errs, fmt.Sprintf("%s: paragraph %d text run %d has invalid color", prefix, i+1, k+1))
				}
			}
		}
	}
	return errs
}
