// Package content holds the static copy rendered into the report and the
// slide deck. Content is plain YAML data so that the document model can be
// built as a pure function of it; the Uy-Joy report and deck are embedded as
// defaults.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/report.yaml data/deck.yaml
var defaults embed.FS

// ErrContentNotFound is returned when a content file does not exist.
var ErrContentNotFound = errors.New("content file not found")

// DefaultReport returns the embedded technical report.
func DefaultReport() (*Report, error) {
	data, err := defaults.ReadFile("data/report.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded report: %w", err)
	}
	return LoadReport(bytes.NewReader(data))
}

// DefaultDeck returns the embedded presentation.
func DefaultDeck() (*Deck, error) {
	data, err := defaults.ReadFile("data/deck.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded deck: %w", err)
	}
	return LoadDeck(bytes.NewReader(data))
}

// LoadReport decodes and validates a report.
func LoadReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := decodeStrict(r, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}
	return &rep, nil
}

// LoadDeck decodes and validates a deck.
func LoadDeck(r io.Reader) (*Deck, error) {
	var d Deck
	if err := decodeStrict(r, &d); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadReportFile loads a report from path.
func LoadReportFile(path string) (*Report, error) {
	f, err := openContent(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReport(f)
}

// LoadDeckFile loads a deck from path.
func LoadDeckFile(path string) (*Deck, error) {
	f, err := openContent(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDeck(f)
}

func openContent(path string) (*os.File, error) {
	f, err := os.Open(path) //nolint:gosec // content path is chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrContentNotFound, path)
		}
		return nil, err
	}
	return f, nil
}

// decodeStrict rejects unknown keys so typos in content files surface early.
func decodeStrict(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}
