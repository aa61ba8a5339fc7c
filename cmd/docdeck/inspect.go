package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/VantageDataChat/docdeck"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show how content is split across pages and slides",
		Long: `Inspect lays out the report and the deck without writing any file and
prints a Markdown summary: the nodes placed on each page, and the shapes
and clipped items of each slide.`,
		Args: cobra.NoArgs,
		RunE: runInspectCmd,
	}
	addContentFlags(cmd)
	return cmd
}

func runInspectCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	setupLogger(cfg)

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	rep, err := loadReport(cfg)
	if err != nil {
		return err
	}
	_, pages, err := gen.RenderReport(rep)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	d, err := loadDeck(cfg)
	if err != nil {
		return err
	}
	deck, err := gen.RenderDeck(d)
	if err != nil {
		return fmt.Errorf("failed to render deck: %w", err)
	}
	return writeInspection(cmd.OutOrStdout(), pages, deck)
}

// writeInspection prints the page and slide summary tables.
func writeInspection(w io.Writer, pages []*docdeck.Page, deck *docdeck.Deck) error {
	md := markdown.NewMarkdown(w)

	md.H2(fmt.Sprintf("Report: %d pages", len(pages)))
	pageRows := make([][]string, 0, len(pages))
	for _, p := range pages {
		pageRows = append(pageRows, []string{
			strconv.Itoa(p.Number),
			strconv.Itoa(len(p.Blocks)),
			describeBlocks(p.Blocks),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Blocks", "Content"},
		Rows:   pageRows,
	})
	md.PlainText("")

	md.H2(fmt.Sprintf("Deck: %d slides", deck.GetSlideCount()))
	slideRows := make([][]string, 0, deck.GetSlideCount())
	for i, s := range deck.GetAllSlides() {
		slideRows = append(slideRows, []string{
			strconv.Itoa(i + 1),
			s.GetKind().String(),
			s.GetTitle(),
			strconv.Itoa(len(s.GetShapes())),
			strconv.Itoa(s.GetClipped()),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Slide", "Layout", "Title", "Shapes", "Clipped"},
		Rows:   slideRows,
	})
	return md.Build()
}

// describeBlocks names each block by kind; list fragments show the item
// range they carry.
func describeBlocks(blocks []*docdeck.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		s := b.Node.Kind().String()
		if l, ok := b.Node.(*docdeck.BulletList); ok && (b.First > 0 || b.Last < l.Len()) {
			s = fmt.Sprintf("%s[%d:%d]", s, b.First, b.Last)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
