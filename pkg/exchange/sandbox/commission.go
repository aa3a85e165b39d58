package sandbox

import (
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// CommissionModel maps a fill's quantity and adjusted price to the
// commission charged.
type CommissionModel interface {
	Charge(quantity uint64, price fixed.Point) fixed.Point
}

// NoCommission charges nothing.
type NoCommission struct{}

func (NoCommission) Charge(_ uint64, _ fixed.Point) fixed.Point {
	return fixed.Zero
}

// FixedPercentage charges |quantity * price| * rate.
type FixedPercentage struct {
	rate fixed.Point
}

func NewFixedPercentage(rate fixed.Point) FixedPercentage {
	return FixedPercentage{rate: rate}
}

func (m FixedPercentage) Charge(quantity uint64, price fixed.Point) fixed.Point {
	return price.MulInt64(int64(quantity)).Abs().Mul(m.rate)
}
