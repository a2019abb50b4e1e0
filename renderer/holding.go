package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fundwatch"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the largest holdings and the allocation by category of a snapshot.
func HoldingsMarkdown(r *fundwatch.HoldingReport) string {
	var buf bytes.Buffer
	doc := newDoc(&buf)

	doc.H1(fmt.Sprintf("%s in %s", r.Fund, r.Month))
	doc.PlainText(fmt.Sprintf("%d holdings, %s of net assets.", r.Count, r.Total))
	if !r.MarketValue.IsZero() {
		doc.PlainText(fmt.Sprintf("Market value: %s.", r.MarketValue))
	}

	doc.H2("Top Holdings")
	top := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Security", "ID", "Category", "Quantity", "Weight"},
		Rows:      [][]string{},
	}
	for _, h := range r.Top {
		top.Rows = append(top.Rows, []string{
			escape(h.Name),
			orDash(h.ID),
			orDash(escape(h.Category)),
			h.Quantity.String(),
			h.Weight.String(),
		})
	}
	doc.Table(top)

	doc.H2("Allocation")
	allocation := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Category", "Securities", "Weight"},
		Rows:      [][]string{},
	}
	for _, c := range r.Allocation {
		allocation.Rows = append(allocation.Rows, []string{escape(c.Category), fmt.Sprint(c.Count), c.Weight.String()})
	}
	doc.Table(allocation)
	return doc.String()
}
