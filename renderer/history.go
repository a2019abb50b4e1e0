package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fundwatch"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the weight of each security, month by month.
func HistoryMarkdown(r *fundwatch.HistoryReport) string {
	var buf bytes.Buffer
	doc := newDoc(&buf)

	doc.H1(fmt.Sprintf("Weight history of %s", r.Fund))
	if len(r.Trajectories) == 0 {
		doc.PlainText("No security held.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Security"},
		Rows:      [][]string{},
	}
	for _, m := range r.Months {
		table.Alignment = append(table.Alignment, md.AlignRight)
		table.Header = append(table.Header, shortMonth(m))
	}
	for _, tr := range r.Trajectories {
		row := []string{escape(tr.Security.Name())}
		for _, m := range r.Months {
			w, ok := tr.Weights.Get(m)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fundwatch.Percent(w).String())
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	return doc.String()
}
