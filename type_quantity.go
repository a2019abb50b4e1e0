package fundwatch

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is the number of units (shares, bonds) held in a security.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (t Quantity) Equal(p Quantity) bool   { return t.value.Equal(p.value) }
func (t Quantity) Sub(p Quantity) Quantity { return Quantity{value: t.value.Sub(p.value)} }
func (t Quantity) IsZero() bool            { return t.value.IsZero() }
func (q Quantity) String() string          { return q.value.String() }

// SignedString returns the quantity with an explicit sign, or "-" when zero.
func (q Quantity) SignedString() string {
	if q.value.IsZero() {
		return "-"
	}
	if q.value.IsPositive() {
		return "+" + q.value.String()
	}
	return q.value.String()
}
