package portfolio

import (
	"github.com/mpetrik/apogee/pkg/common"
	"github.com/mpetrik/apogee/pkg/utility/fixed"
)

// Position is the per-symbol ledger entry: signed net quantity (positive
// long, negative short), the volume-weighted entry price of the open lot,
// and cumulative realized profit. AvgPrice is meaningful only while
// Quantity is non-zero; it resets to zero when the position flattens.
type Position struct {
	Symbol      string
	Quantity    int64
	AvgPrice    fixed.Point
	RealizedPnL fixed.Point
}

func NewPosition(symbol string) *Position {
	return &Position{
		Symbol:      symbol,
		AvgPrice:    fixed.Zero,
		RealizedPnL: fixed.Zero,
	}
}

// ApplyFill runs the position state machine. Fills on the same side as the
// open lot re-weight the average price; opposing fills realize profit on
// the closed portion and, when the fill is larger than the lot, flip the
// remainder to the other side at the fill price. Commission is always
// debited from realized profit, on opening and closing volume alike.
func (p *Position) ApplyFill(side common.OrderSide, quantity uint64, price, commission fixed.Point) {
	signedQty := int64(quantity)
	if side == common.OrderSideSell {
		signedQty = -signedQty
	}

	if p.Quantity == 0 || (p.Quantity > 0) == (signedQty > 0) {
		newQty := p.Quantity + signedQty
		if newQty != 0 {
			oldWeight := p.AvgPrice.MulInt64(abs(p.Quantity))
			addWeight := price.MulInt64(abs(signedQty))
			p.AvgPrice = oldWeight.Add(addWeight).DivInt64(abs(newQty))
		}
		p.Quantity = newQty
	} else {
		if p.Quantity > 0 {
			closeQty := min(p.Quantity, -signedQty)
			p.RealizedPnL = p.RealizedPnL.Add(price.Sub(p.AvgPrice).MulInt64(closeQty))
			p.Quantity -= closeQty
			signedQty += closeQty
		} else {
			closeQty := min(-p.Quantity, signedQty)
			p.RealizedPnL = p.RealizedPnL.Add(p.AvgPrice.Sub(price).MulInt64(closeQty))
			p.Quantity += closeQty
			signedQty -= closeQty
		}
		if p.Quantity == 0 {
			p.AvgPrice = fixed.Zero
		}

		// A leftover opens the flip side at the fill price.
		if signedQty != 0 {
			p.AvgPrice = price
			p.Quantity += signedQty
		}
	}

	p.RealizedPnL = p.RealizedPnL.Sub(commission)
}

// MarketValue is the signed value of the open lot at the given price.
func (p *Position) MarketValue(lastPrice fixed.Point) fixed.Point {
	return lastPrice.MulInt64(p.Quantity)
}

// UnrealizedPnL is the profit the open lot would realize at the given
// price.
func (p *Position) UnrealizedPnL(lastPrice fixed.Point) fixed.Point {
	switch {
	case p.Quantity > 0:
		return lastPrice.Sub(p.AvgPrice).MulInt64(p.Quantity)
	case p.Quantity < 0:
		return p.AvgPrice.Sub(lastPrice).MulInt64(-p.Quantity)
	}
	return fixed.Zero
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
