// Package main provides the entry point for the docdeck CLI.
//
// docdeck renders the Uy-Joy technical report as a paginated PDF and the
// product presentation as a PPTX slide deck, from the same theme.
//
// Usage:
//
//	docdeck build
//	docdeck build --pdf out/report.pdf --pptx ""
//	docdeck preview -d previews
//
// See --help for all available options.
package main

func main() {
	Execute()
}
