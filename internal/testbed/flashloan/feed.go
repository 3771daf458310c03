package flashloan

type pricePoint struct {
	timestamp uint64
	price     uint64
}

// PriceFeed records per-token prices over time.
type PriceFeed struct {
	Now     uint64
	spot    map[string]uint64
	history map[string][]pricePoint
}

func NewPriceFeed() *PriceFeed {
	return &PriceFeed{
		spot:    make(map[string]uint64),
		history: make(map[string][]pricePoint),
	}
}

// Update sets the spot price of token and drops history older than
// HistoryRetention.
func (f *PriceFeed) Update(token string, price uint64) {
	f.spot[token] = price
	points := append(f.history[token], pricePoint{timestamp: f.Now, price: price})
	kept := points[:0]
	for _, point := range points {
		if f.Now-point.timestamp <= HistoryRetention {
			kept = append(kept, point)
		}
	}
	f.history[token] = kept
}

func (f *PriceFeed) Advance(seconds uint64) {
	f.Now += seconds
}

func (f *PriceFeed) Spot(token string) (uint64, bool) {
	price, ok := f.spot[token]
	return price, ok
}

// TWAP averages the prices of token recorded in the last period seconds.
func (f *PriceFeed) TWAP(token string, period uint64) (uint64, bool) {
	var minTime uint64
	if f.Now > period {
		minTime = f.Now - period
	}
	var sum, n uint64
	for _, point := range f.history[token] {
		if point.timestamp >= minTime {
			sum += point.price
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / n, true
}
