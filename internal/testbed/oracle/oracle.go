// Package oracle is a lending protocol that liquidates positions using an
// oracle price. The vulnerable protocol trusts a single spot price; the
// secure one checks staleness, falls back to a backup oracle, dampens
// jumps and uses the lower of spot and TWAP.
package oracle

import (
	"github.com/pkg/errors"

	"rscanner/internal/testbed"
)

const (
	// LiquidationThreshold is the collateral ratio, in percent, below which
	// a position may be liquidated.
	LiquidationThreshold = 110

	MaxAge           uint64 = 300
	TWAPPeriod       uint64 = 3600
	MaxPriceChange   uint64 = 20
	HistoryRetention uint64 = 86400
)

var (
	ErrPositionNotFound = errors.New("Position not found")
	ErrNotLiquidatable  = errors.New("Position is not eligible for liquidation")
	ErrStale            = errors.New("Oracle data is stale")
	ErrNoHistory        = errors.New("Insufficient historical price data")
	ErrAllStale         = errors.New("All oracle data is stale")
)

type Position struct {
	Owner      testbed.Address
	Collateral uint64
	Loan       uint64
}

func liquidatable(p *Position, price uint64) bool {
	return p.Collateral*price < p.Loan*LiquidationThreshold/100
}

// SpotOracle reports whatever it was last told.
type SpotOracle struct {
	Price      uint64
	LastUpdate uint64
}

func (o *SpotOracle) Update(price, timestamp uint64) {
	o.Price = price
	o.LastUpdate = timestamp
}

type VulnerableProtocol struct {
	Oracle      SpotOracle
	Positions   map[testbed.Address]*Position
	CurrentTime uint64
}

func NewVulnerableProtocol(initialPrice uint64) *VulnerableProtocol {
	return &VulnerableProtocol{
		Oracle:    SpotOracle{Price: initialPrice},
		Positions: make(map[testbed.Address]*Position),
	}
}

func (p *VulnerableProtocol) UpdateOraclePrice(price uint64) {
	p.CurrentTime++
	p.Oracle.Update(price, p.CurrentTime)
}

func (p *VulnerableProtocol) Liquidate(id testbed.Address) error {
	position, ok := p.Positions[id]
	if !ok {
		return ErrPositionNotFound
	}
	if !liquidatable(position, p.Oracle.Price) {
		return ErrNotLiquidatable
	}
	delete(p.Positions, id)
	return nil
}

type pricePoint struct {
	timestamp uint64
	price     uint64
}

// GuardedOracle keeps a dampened price history.
type GuardedOracle struct {
	Price      uint64
	LastUpdate uint64
	history    []pricePoint
}

func NewGuardedOracle(initialPrice uint64) *GuardedOracle {
	return &GuardedOracle{
		Price:   initialPrice,
		history: []pricePoint{{timestamp: 0, price: initialPrice}},
	}
}

// SpotPrice fails when the last update is older than MaxAge.
func (o *GuardedOracle) SpotPrice(now uint64) (uint64, error) {
	if now > o.LastUpdate && now-o.LastUpdate > MaxAge {
		return 0, ErrStale
	}
	return o.Price, nil
}

// TWAP averages the recorded prices of the last period seconds.
func (o *GuardedOracle) TWAP(period, now uint64) (uint64, error) {
	var minTime uint64
	if now > period {
		minTime = now - period
	}
	var sum, n uint64
	for _, point := range o.history {
		if point.timestamp >= minTime {
			sum += point.price
			n++
		}
	}
	if n == 0 {
		return 0, ErrNoHistory
	}
	return sum / n, nil
}

// Update moves the price at most MaxPriceChange percent away from the last
// recorded one.
func (o *GuardedOracle) Update(price, timestamp uint64) {
	o.Price = price
	if len(o.history) > 0 {
		last := o.history[len(o.history)-1].price
		o.Price = dampen(last, price)
	}
	o.history = append(o.history, pricePoint{timestamp: timestamp, price: o.Price})
	o.LastUpdate = timestamp

	var minTime uint64
	if timestamp > HistoryRetention {
		minTime = timestamp - HistoryRetention
	}
	kept := o.history[:0]
	for _, point := range o.history {
		if point.timestamp >= minTime {
			kept = append(kept, point)
		}
	}
	o.history = kept
}

func dampen(last, price uint64) uint64 {
	if last == 0 {
		return price
	}
	var change uint64
	if price > last {
		change = (price - last) * 100 / last
	} else {
		change = (last - price) * 100 / last
	}
	if change <= MaxPriceChange {
		return price
	}
	step := last * MaxPriceChange / 100
	if price > last {
		return last + step
	}
	if step > last {
		return 0
	}
	return last - step
}

type SecureProtocol struct {
	Primary     *GuardedOracle
	Backup      *GuardedOracle
	Positions   map[testbed.Address]*Position
	CurrentTime uint64
}

func NewSecureProtocol(initialPrice uint64) *SecureProtocol {
	return &SecureProtocol{
		Primary:   NewGuardedOracle(initialPrice),
		Backup:    NewGuardedOracle(initialPrice),
		Positions: make(map[testbed.Address]*Position),
	}
}

func (p *SecureProtocol) UpdatePrimaryPrice(price uint64) {
	p.CurrentTime++
	p.Primary.Update(price, p.CurrentTime)
}

func (p *SecureProtocol) UpdateBackupPrice(price uint64) {
	p.CurrentTime++
	p.Backup.Update(price, p.CurrentTime)
}

func (p *SecureProtocol) Advance(seconds uint64) {
	p.CurrentTime += seconds
}

// Price is the conservative liquidation price: the lower of the spot price
// (primary, else backup) and the primary TWAP.
func (p *SecureProtocol) Price() (uint64, error) {
	spot, err := p.Primary.SpotPrice(p.CurrentTime)
	if err != nil {
		spot, err = p.Backup.SpotPrice(p.CurrentTime)
		if err != nil {
			return 0, ErrAllStale
		}
	}
	twap, err := p.Primary.TWAP(TWAPPeriod, p.CurrentTime)
	if err != nil {
		twap = spot
	}
	if twap < spot {
		return twap, nil
	}
	return spot, nil
}

func (p *SecureProtocol) Liquidate(id testbed.Address) error {
	position, ok := p.Positions[id]
	if !ok {
		return ErrPositionNotFound
	}
	price, err := p.Price()
	if err != nil {
		return err
	}
	if !liquidatable(position, price) {
		return ErrNotLiquidatable
	}
	delete(p.Positions, id)
	return nil
}
