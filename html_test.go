package docdeck

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestWriteHTML(t *testing.T) {
	doc, err := NewDocumentBuilder().
		Title("R&D <report>", "Subtitle").
		Heading(1, "Overview").
		Note("Small print").
		Bullets("a", "b").
		Table([]string{"Name", "Value"}, [][]string{{"Go", "1.22"}}, 1, 3).
		Break().
		Paragraph("After the break").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc, DefaultTheme(), "uz"); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="uz">`,
		"<title>R&amp;D &lt;report&gt;</title>",
		"<h1>R&amp;D &lt;report&gt;</h1>",
		`<p class="subtitle">Subtitle</p>`,
		"<h2>Overview</h2>",
		`<p class="note">Small print</p>`,
		"<li>a</li>",
		"<th>Name</th>",
		"<td>1.22</td>",
		`<col style="width:25.0%"/>`,
		`<div class="page-break"></div>`,
		"page-break-after: always",
		"#1E2A38",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}

	if _, err := html.Parse(strings.NewReader(out)); err != nil {
		t.Errorf("output does not parse: %v", err)
	}
}

func TestWriteHTML_Errors(t *testing.T) {
	doc := mustDoc(t, NewParagraph("x"))
	var buf bytes.Buffer

	if err := WriteHTML(&buf, nil, DefaultTheme(), "en"); err == nil {
		t.Error("expected error for nil document")
	}
	if err := WriteHTML(&buf, doc, nil, "en"); err == nil {
		t.Error("expected error for nil theme")
	}
	if err := WriteHTML(&buf, doc, DefaultTheme(), "not a tag!"); err == nil {
		t.Error("expected error for invalid language")
	}
	th := DefaultTheme().clone()
	delete(th.styles, StyleCode)
	if err := WriteHTML(&buf, doc, th, "en"); err == nil {
		t.Error("expected error for a theme missing a style")
	}
	if buf.Len() != 0 {
		t.Error("failed writes produced output")
	}
}
