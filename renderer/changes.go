package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fundwatch"
	md "github.com/nao1215/markdown"
)

// ChangesMarkdown renders the changes of a fund between two months.
func ChangesMarkdown(r *fundwatch.ChangeReport) string {
	var buf bytes.Buffer
	doc := newDoc(&buf)

	doc.H1(fmt.Sprintf("Changes in %s", r.Fund))
	doc.PlainText(fmt.Sprintf("From %s to %s.", r.From, r.To))

	doc.H2("Summary")
	summary := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Status", "Securities", "Weight Moved"},
		Rows:      [][]string{},
	}
	for _, s := range r.Summary {
		summary.Rows = append(summary.Rows, []string{s.Status.String(), fmt.Sprint(s.Count), s.Moved.SignedString()})
	}
	doc.Table(summary)

	doc.H2("Securities")
	if r.Significant > 0 {
		doc.PlainText(fmt.Sprintf("%d of %d securities added, removed or moving by at least %s.", len(r.Records), r.Total, r.Significant))
	}
	if len(r.Records) == 0 {
		doc.PlainText("No change.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Security", "ID", "From", "To", "Delta", "Units", "Status"},
		Rows:      [][]string{},
	}
	for _, c := range r.Records {
		table.Rows = append(table.Rows, []string{
			escape(c.Security.Name()),
			orDash(c.Security.ID()),
			c.From.String(),
			c.To.String(),
			c.Delta().SignedString(),
			c.QuantityDelta().SignedString(),
			c.Status.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
