package docdeck

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteMarkdown(t *testing.T) {
	doc := NewDocumentBuilder().
		Title("Uy-Joy", "Technical report").
		Heading(1, "Overview").
		Lead("Lead paragraph").
		Paragraph("Plain text").
		Bullets("first", "second").
		Numbered("one", "two").
		Table([]string{"Name", "Value"}, [][]string{{"Go", "1.22"}}).
		Break().
		Heading(2, "Details").
		Code("go build ./...")
	built, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, built); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Uy-Joy\n",
		"## Overview\n",
		"### Details\n",
		"**Lead paragraph**",
		"*Technical report*",
		"Plain text",
		"- first",
		"- second",
		"1. one",
		"go build ./...",
		"---",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "\n# ") > 0 {
		t.Error("headings were not shifted below the title")
	}
	lower := strings.ToLower(out)
	for _, want := range []string{"name", "value", "| go", "1.22"} {
		if !strings.Contains(lower, want) {
			t.Errorf("table cell %q missing:\n%s", want, out)
		}
	}
}

func TestWriteMarkdown_DefaultReport(t *testing.T) {
	doc, err := BuildReport(mustDefaultReport(t))
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, doc); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if !strings.Contains(buf.String(), "## 1. Executive Summary") {
		t.Error("section heading missing from Markdown")
	}
}

func TestWriteMarkdown_NilDocument(t *testing.T) {
	if err := WriteMarkdown(&bytes.Buffer{}, nil); err == nil {
		t.Error("expected error for nil document")
	}
}
