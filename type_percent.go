package fundwatch

import (
	"fmt"
	"math"
)

// Percent is a share of the fund net asset value, in percent (5.2 means 5.2% of NAV).
type Percent float64

// Equal reports whether p and q are at most 'epsilon' apart. Equal weights are always equal.
func (p Percent) Equal(q Percent, epsilon float64) bool {
	return p == q || math.Abs(float64(p-q)) <= epsilon
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// Abs returns the absolute value of p.
func (p Percent) Abs() Percent { return Percent(math.Abs(float64(p))) }
