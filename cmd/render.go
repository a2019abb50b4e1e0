package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

var plain = flag.Bool("plain", false, "Print raw markdown, even on a terminal")

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

// printMarkdown prints a markdown document, styled when stdout is a terminal.
func printMarkdown(doc string) {
	f, ok := stdout.(*os.File)
	if *plain || !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stdout, doc)
		return
	}
	width := 100
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		width = w
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		fmt.Fprint(stdout, doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Fprint(stdout, doc)
		return
	}
	fmt.Fprint(stdout, out)
}
