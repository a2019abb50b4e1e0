package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fundwatch/date"
	md "github.com/nao1215/markdown"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// shortMonth formats a month as a compact column header, e.g. "Sep 2024".
func shortMonth(m date.Month) string {
	return fmt.Sprintf("%.3s %d", m.Month(), m.Year())
}

// escape protects the table cells against names containing a pipe.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// orDash returns s, or "-" when it is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// newDoc returns a markdown document writing to buf.
func newDoc(buf *bytes.Buffer) *md.Markdown {
	return md.NewMarkdown(buf)
}
