// Package date provides the month calendar used to key portfolio snapshots.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LabelFormat is the format used to represent months in portfolio disclosures, e.g. "September 2024".
const LabelFormat = "January 2006"

// KeyFormat is the compact, sortable format of a month, e.g. "2024-09".
const KeyFormat = "2006-01"

// readFormats are the formats accepted by Parse, tried in order.
var readFormats = []string{LabelFormat, "Jan 2006", KeyFormat, "2006-1", "01/2006", "1/2006"}

// Month represents a calendar month. The zero value is not a valid month.
type Month struct {
	y int
	m time.Month
}

// New returns a normalized Month for the given year and month.
func New(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{t.Year(), t.Month()}
}

// time returns the first day of the month at midnight UTC.
func (m Month) time() time.Time { return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.m }

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.Compare(x) < 0 }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return m.Compare(x) > 0 }

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after x.
func (m Month) Compare(x Month) int {
	switch {
	case m.y < x.y, m.y == x.y && m.m < x.m:
		return -1
	case m == x:
		return 0
	default:
		return 1
	}
}

// String formats the month as it appears in disclosure file names ("September 2024").
func (m Month) String() string { return m.time().Format(LabelFormat) }

// Key formats the month in its sortable form ("2024-09").
func (m Month) Key() string { return m.time().Format(KeyFormat) }

// Parse parses a Month. It is lenient and accepts "September 2024", "Sep 2024", "sept 2024",
// "2024-09" and "09/2024".
func Parse(str string) (Month, error) {
	s := strings.Join(strings.Fields(str), " ")
	// time.Parse is case sensitive on month names.
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:i]) + s[i:]
		// "Sept" is common in fund disclosures but unknown to the time package.
		if strings.HasPrefix(s, "Sept ") {
			s = "Sep" + s[4:]
		}
	}
	for _, layout := range readFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t.Year(), t.Month()), nil
		}
	}
	return Month{}, fmt.Errorf("invalid month %q want format %q or %q", str, LabelFormat, KeyFormat)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Month {
	m, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// UnmarshalJSON implements the json specific way to unmarshall a month from a json string.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.Key()
	return json.Marshal(&str)
}

// check that a Month pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
