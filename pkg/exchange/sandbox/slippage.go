package sandbox

import (
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// SlippageModel maps an order and a reference price to the price the fill
// actually executes at.
type SlippageModel interface {
	Adjust(order common.Order, price fixed.Point) fixed.Point
}

// NoSlippage is the identity model.
type NoSlippage struct{}

func (NoSlippage) Adjust(_ common.Order, price fixed.Point) fixed.Point {
	return price
}

// FixedBasisPoints worsens the price by a fixed fraction, directionally: a
// buyer pays more, a seller receives less.
type FixedBasisPoints struct {
	fraction fixed.Point
}

func NewFixedBasisPoints(basisPoints fixed.Point) FixedBasisPoints {
	return FixedBasisPoints{
		fraction: basisPoints.DivInt64(10000),
	}
}

func (m FixedBasisPoints) Adjust(order common.Order, price fixed.Point) fixed.Point {
	switch order.Side {
	case common.OrderSideBuy:
		return price.Mul(fixed.One.Add(m.fraction))
	case common.OrderSideSell:
		return price.Mul(fixed.One.Sub(m.fraction))
	}
	return price
}
