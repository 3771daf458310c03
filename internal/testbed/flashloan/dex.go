package flashloan

import "github.com/pkg/errors"

// PriceScale is the fixed-point unit of prices: 1.0 == 1_000_000.
const PriceScale = 1_000_000

var ErrUnknownToken = errors.New("Token not in pool")

// DexPool is a constant-product pool; its spot price moves with every swap.
type DexPool struct {
	TokenA   string
	TokenB   string
	ReserveA uint64
	ReserveB uint64
}

// Price quotes one unit of base in quote, scaled by PriceScale. Zero when the
// pair does not match the pool.
func (d *DexPool) Price(base, quote string) uint64 {
	switch {
	case base == d.TokenA && quote == d.TokenB:
		return d.ReserveB * PriceScale / d.ReserveA
	case base == d.TokenB && quote == d.TokenA:
		return d.ReserveA * PriceScale / d.ReserveB
	}
	return 0
}

// Swap sells amountIn of tokenIn and returns the amount of the other token
// bought, keeping ReserveA*ReserveB constant.
func (d *DexPool) Swap(tokenIn string, amountIn uint64) (uint64, error) {
	k := d.ReserveA * d.ReserveB
	switch tokenIn {
	case d.TokenA:
		a := d.ReserveA + amountIn
		b := k / a
		out := d.ReserveB - b
		d.ReserveA, d.ReserveB = a, b
		return out, nil
	case d.TokenB:
		b := d.ReserveB + amountIn
		a := k / b
		out := d.ReserveA - a
		d.ReserveA, d.ReserveB = a, b
		return out, nil
	}
	return 0, ErrUnknownToken
}
