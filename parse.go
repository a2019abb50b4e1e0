package fundwatch

import (
	"regexp"
	"slices"
	"strings"

	"github.com/etnz/fundwatch/date"
	"github.com/shopspring/decimal"
)

// Columns lists, for each holding attribute, the header labels that can hold it.
// Labels are compared after trimming, collapsing whitespace and case folding.
type Columns struct {
	Identifier  []string `yaml:"identifier"`
	Name        []string `yaml:"name"`
	Category    []string `yaml:"category"`
	Quantity    []string `yaml:"quantity"`
	Weight      []string `yaml:"weight"`
	MarketValue []string `yaml:"market_value"`
}

// DefaultColumns returns the header labels used by Indian mutual fund monthly disclosures.
func DefaultColumns() Columns {
	return Columns{
		Identifier:  []string{"ISIN", "ISIN Code", "Identifier", "Security ID"},
		Name:        []string{"Name of the Instrument", "Name of Instrument", "Instrument Name", "Name of the Security", "Security Name", "Name"},
		Category:    []string{"Rating / Industry^", "Rating / Industry", "Industry / Rating", "Rating", "Industry", "Category", "Sector"},
		Quantity:    []string{"Quantity", "Qty", "Units"},
		Weight:      []string{"% to NAV", "% to Net Assets", "% of NAV", "% NAV", "Weight", "Weight (%)", "weightPct"},
		MarketValue: []string{"Market value(Rs. in Lakhs)", "Market Value (Rs. in Lakhs)", "Market Value", "Market value (Rs. Lakhs)"},
	}
}

// DefaultIgnoreNames matches the total lines and the usual section headings of a disclosure, like
// "Equity & Equity related" or "(a) Listed / awaiting listing on Stock Exchanges".
var DefaultIgnoreNames = regexp.MustCompile(`(?i)^(sub[ -]?total|grand total|total|net assets|net current assets` +
	`|equity|equity & equity related.*|debt instruments.*|money market instruments.*|others|\([a-z]+\) .*)$`)

// ParseOptions configures ParseSnapshot. The zero value uses DefaultColumns, DefaultIgnoreNames and
// no market value currency.
type ParseOptions struct {
	Source           string         // name of the source, used in errors.
	Columns          Columns        // header labels, defaults to DefaultColumns().
	IgnoreNames      *regexp.Regexp // holdings whose name matches are dropped, defaults to DefaultIgnoreNames.
	Currency         string         // currency of the market value column.
	MarketValueScale float64        // multiplier applied to market values (100000 for "Rs. in Lakhs"), defaults to 1.
}

// column kinds, in the order they are reported when missing.
const (
	colIdentifier = iota
	colName
	colQuantity
	colWeight
	colCategory
	colMarketValue
	colCount
)

var columnNames = [colCount]string{"identifier", "name", "quantity", "weight", "category", "market value"}

// required columns are the first four kinds.
const requiredColumns = colWeight + 1

func (c Columns) aliases() [colCount][]string {
	return [colCount][]string{c.Identifier, c.Name, c.Quantity, c.Weight, c.Category, c.MarketValue}
}

func (c Columns) isZero() bool {
	for _, a := range c.aliases() {
		if len(a) > 0 {
			return false
		}
	}
	return true
}

// ParseSnapshot reads the holdings of a fund for a given month from raw tabular content.
//
// Rows before the header row (titles, disclaimers) are ignored. The header row is the first one with a
// cell labelled like the name column. It fails with a *MalformedInputError if a required column
// (identifier, name, quantity, weight) is missing, and with an *EmptyDataError if no row has a name.
//
// Parsing is tolerant: blank rows and rows without name are skipped, names matching the ignore
// regexp (total lines, section headings) are dropped, and blank or non numeric quantities and weights
// are read as 0.
func ParseSnapshot(fund string, period date.Month, rows [][]string, opts ParseOptions) (*Snapshot, error) {
	columns := opts.Columns
	if columns.isZero() {
		columns = DefaultColumns()
	}
	ignore := opts.IgnoreNames
	if ignore == nil {
		ignore = DefaultIgnoreNames
	}
	scale := decimal.NewFromInt(1)
	if opts.MarketValueScale > 0 {
		scale = decimal.NewFromFloat(opts.MarketValueScale)
	}

	header, index := findHeader(rows, columns)
	if header < 0 {
		return nil, &MalformedInputError{Source: opts.Source, Missing: slices.Clone(columnNames[:requiredColumns])}
	}
	var missing []string
	for kind := range requiredColumns {
		if index[kind] < 0 {
			missing = append(missing, columnNames[kind])
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedInputError{Source: opts.Source, Missing: missing}
	}

	s := &Snapshot{fund: fund, period: period, source: opts.Source}
	for _, row := range rows[header+1:] {
		cell := func(kind int) string {
			i := index[kind]
			if i < 0 || i >= len(row) {
				return ""
			}
			return cleanText(row[i])
		}
		if isBlank(row) {
			continue
		}
		name := cell(colName)
		if name == "" || ignore.MatchString(name) {
			continue
		}
		quantity, _ := parseNumber(cell(colQuantity))
		weight, _ := parseNumber(cell(colWeight))
		h := Holding{
			ID:       cell(colIdentifier),
			Name:     name,
			Category: cell(colCategory),
			Quantity: Q(quantity),
			Weight:   Percent(weight.InexactFloat64()),
		}
		if mv, ok := parseNumber(cell(colMarketValue)); ok {
			h.MarketValue = M(mv.Mul(scale), opts.Currency)
		}
		s.add(h)
	}
	if len(s.holdings) == 0 {
		return nil, &EmptyDataError{Source: opts.Source}
	}
	return s, nil
}

// findHeader returns the index of the header row and the column index of each column kind (-1 when
// absent), or -1 if no row has a name column.
func findHeader(rows [][]string, columns Columns) (int, [colCount]int) {
	var folded [colCount][]string
	for kind, labels := range columns.aliases() {
		for _, l := range labels {
			folded[kind] = append(folded[kind], foldName(l))
		}
	}

	var index [colCount]int
	for r, row := range rows {
		for kind := range index {
			index[kind] = -1
		}
		for i, c := range row {
			key := foldName(c)
			if key == "" {
				continue
			}
			for kind := range index {
				if index[kind] < 0 && slices.Contains(folded[kind], key) {
					index[kind] = i
					break
				}
			}
		}
		if index[colName] >= 0 {
			return r, index
		}
	}
	return -1, index
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber reads a number the way it is printed in disclosures: "1,23,456", "5.23%", "(12.5)".
// It returns false for blank cells, and zero for anything else that is not a number.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '%', ' ':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}
