package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fundwatch"
	md "github.com/nao1215/markdown"
)

// FundsMarkdown renders the funds found in a data folder and their available months.
func FundsMarkdown(c *fundwatch.Catalog) string {
	var buf bytes.Buffer
	doc := newDoc(&buf)

	doc.H1(fmt.Sprintf("Funds in %s", c.Dir()))
	funds := c.Funds()
	if len(funds) == 0 {
		doc.PlainText("No monthly portfolio found.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Fund", "Months", "First", "Last"},
		Rows:      [][]string{},
	}
	for _, f := range funds {
		months := c.Months(f)
		table.Rows = append(table.Rows, []string{escape(f), fmt.Sprint(len(months)), months[0].String(), months[len(months)-1].String()})
	}
	doc.Table(table)
	return doc.String()
}
