package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fundwatch"
	"github.com/etnz/fundwatch/date"
	md "github.com/nao1215/markdown"
)

// LinksMarkdown renders how the holdings of consecutive months were matched, so that fuzzy matches
// can be reviewed.
func LinksMarkdown(r *fundwatch.LinkReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Links of %s\n\n", r.Fund)
	for _, l := range r.Linkings {
		b.WriteString(linkingMarkdown(l))
		b.WriteString("\n")
	}
	return b.String()
}

func linkingMarkdown(l *fundwatch.Linking) string {
	var buf bytes.Buffer
	doc := newDoc(&buf)
	doc.H2(date.NewRange(l.From.Period(), l.To.Period()).String())

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Earlier Name", "Later Name", "Matched By", "Score"},
		Rows:      [][]string{},
	}
	exact := 0
	for _, link := range l.Links {
		// exact name and identifier matches are only counted.
		if link.Method == fundwatch.ByID && link.From.Name == link.To.Name {
			exact++
			continue
		}
		table.Rows = append(table.Rows, []string{escape(link.From.Name), escape(link.To.Name), link.Method.String(), fmt.Sprint(link.Score)})
	}
	doc.PlainText(fmt.Sprintf("%d securities linked, %d by identifier with the same name.", len(l.Links), exact))
	if len(table.Rows) > 0 {
		doc.Table(table)
	}

	var sections bytes.Buffer
	for _, s := range []struct {
		title    string
		holdings []*fundwatch.Holding
	}{{"Added", l.Added}, {"Removed", l.Removed}} {
		ConditionalBlock(&sections, func(w io.Writer) bool {
			if len(s.holdings) == 0 {
				return false
			}
			var items []string
			for _, h := range s.holdings {
				items = append(items, fmt.Sprintf("%s (%s)", h.Name, h.Weight))
			}
			fmt.Fprintf(w, "\n### %s\n\n", s.title)
			w.Write([]byte(md.NewMarkdown(io.Discard).BulletList(items...).String()))
			fmt.Fprintln(w)
			return true
		})
	}
	return doc.String() + "\n" + sections.String()
}
