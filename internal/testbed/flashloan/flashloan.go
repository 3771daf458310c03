// Package flashloan is a lending protocol with uncollateralised flash loans.
// The vulnerable protocol lends for free and prices collateral off a DEX pool
// that the borrowed funds can move within the same call. The secure one
// charges a fee, caps the loan and prices positions from a TWAP feed that
// refuses to liquidate while the spot price deviates from it.
package flashloan

import (
	"github.com/pkg/errors"

	"rscanner/internal/testbed"
)

const (
	// LiquidationThreshold is the required collateralisation in percent.
	LiquidationThreshold = 110
	// LiquidationBonus is the share of the collateral, in percent, the
	// protocol keeps on liquidation.
	LiquidationBonus = 5

	// MaxLoanPercent caps a secure flash loan as a share of the pool.
	MaxLoanPercent = 50
	// MaxDeviation is the allowed spot/TWAP gap in percent.
	MaxDeviation = 10

	TWAPPeriod       uint64 = 3600
	HistoryRetention uint64 = 86400
)

var (
	ErrPoolNotFound          = errors.New("Pool not found")
	ErrInsufficientLiquidity = errors.New("Insufficient liquidity for flash loan")
	ErrNotRepaid             = errors.New("Flash loan not repaid")
	ErrPositionNotFound      = errors.New("Position not found")
	ErrNotLiquidatable       = errors.New("Position is not liquidatable")
	ErrLoanTooLarge          = errors.New("Flash loan exceeds maximum allowed amount")
	ErrNotRepaidWithFee      = errors.New("Flash loan not repaid with fee")
	ErrNoCollateralPrice     = errors.New("Insufficient price data for collateral token")
	ErrNoBorrowedPrice       = errors.New("Insufficient price data for borrowed token")
	ErrNoSpotPrice           = errors.New("No spot price for collateral token")
	ErrSuspiciousPrice       = errors.New("Suspicious price movement detected, liquidation blocked")
)

type LendingPool struct {
	Reserves uint64
	// FeeBasisPoints is the flash loan fee; the vulnerable protocol ignores it.
	FeeBasisPoints uint64
}

type Position struct {
	Owner           testbed.Address
	CollateralToken string
	Collateral      uint64
	BorrowedToken   string
	Borrowed        uint64
}

// market is the state both protocols share.
type market struct {
	Pools     map[string]*LendingPool
	Dexes     []*DexPool
	Positions map[uint64]*Position
	nextID    uint64
}

func newMarket() market {
	return market{
		Pools:     make(map[string]*LendingPool),
		Positions: make(map[uint64]*Position),
		nextID:    1,
	}
}

func (m *market) OpenPosition(owner testbed.Address, collateralToken string, collateral uint64, borrowedToken string, borrowed uint64) uint64 {
	id := m.nextID
	m.nextID++
	m.Positions[id] = &Position{
		Owner:           owner,
		CollateralToken: collateralToken,
		Collateral:      collateral,
		BorrowedToken:   borrowedToken,
		Borrowed:        borrowed,
	}
	return id
}

// Repay returns tokens to a lending pool.
func (m *market) Repay(token string, amount uint64) error {
	pool, ok := m.Pools[token]
	if !ok {
		return ErrPoolNotFound
	}
	pool.Reserves += amount
	return nil
}

// liquidate removes the position when the collateral value is below the
// threshold and returns the collateral handed to the liquidator.
func (m *market) liquidate(id uint64, position *Position, collateralPrice, borrowedPrice uint64) (uint64, error) {
	collateralValue := position.Collateral * collateralPrice / PriceScale
	debtValue := position.Borrowed * borrowedPrice / PriceScale
	if collateralValue >= debtValue*LiquidationThreshold/100 {
		return 0, ErrNotLiquidatable
	}
	delete(m.Positions, id)
	return position.Collateral - position.Collateral*LiquidationBonus/100, nil
}

type VulnerableProtocol struct {
	market
}

func NewVulnerableProtocol() *VulnerableProtocol {
	return &VulnerableProtocol{market: newMarket()}
}

// FlashLoan lends amount of token for the duration of borrow, free of
// charge and up to the whole pool.
func (p *VulnerableProtocol) FlashLoan(token string, amount uint64, borrow func(*VulnerableProtocol) error) error {
	pool, ok := p.Pools[token]
	if !ok {
		return ErrPoolNotFound
	}
	if amount > pool.Reserves {
		return ErrInsufficientLiquidity
	}
	initial := pool.Reserves
	pool.Reserves -= amount

	if err := borrow(p); err != nil {
		pool.Reserves += amount
		return err
	}
	if pool.Reserves < initial {
		return ErrNotRepaid
	}
	return nil
}

// Price reads the spot price of token from the first DEX pool that lists
// it, or 1.0 when none does.
func (p *VulnerableProtocol) Price(token string) uint64 {
	for _, dex := range p.Dexes {
		switch token {
		case dex.TokenA:
			return dex.Price(token, dex.TokenB)
		case dex.TokenB:
			return dex.Price(token, dex.TokenA)
		}
	}
	return PriceScale
}

func (p *VulnerableProtocol) Liquidate(id uint64) (uint64, error) {
	position, ok := p.Positions[id]
	if !ok {
		return 0, ErrPositionNotFound
	}
	return p.liquidate(id, position, p.Price(position.CollateralToken), p.Price(position.BorrowedToken))
}

type SecureProtocol struct {
	market
	Feed *PriceFeed
}

func NewSecureProtocol() *SecureProtocol {
	return &SecureProtocol{market: newMarket(), Feed: NewPriceFeed()}
}

// Fee is the flash loan fee on amount for the pool of token.
func (p *SecureProtocol) Fee(token string, amount uint64) uint64 {
	pool, ok := p.Pools[token]
	if !ok {
		return 0
	}
	return amount * pool.FeeBasisPoints / 10000
}

// FlashLoan lends at most MaxLoanPercent of the pool and requires the loan
// plus fee back before it returns.
func (p *SecureProtocol) FlashLoan(token string, amount uint64, borrow func(*SecureProtocol) error) error {
	pool, ok := p.Pools[token]
	if !ok {
		return ErrPoolNotFound
	}
	if amount > pool.Reserves*MaxLoanPercent/100 {
		return ErrLoanTooLarge
	}
	fee := p.Fee(token, amount)
	initial := pool.Reserves
	pool.Reserves -= amount

	if err := borrow(p); err != nil {
		pool.Reserves = initial
		return err
	}
	if pool.Reserves < initial+fee {
		return ErrNotRepaidWithFee
	}
	return nil
}

// Liquidate values the position at the TWAP and blocks liquidation while
// the collateral spot price is more than MaxDeviation percent off it.
func (p *SecureProtocol) Liquidate(id uint64) (uint64, error) {
	position, ok := p.Positions[id]
	if !ok {
		return 0, ErrPositionNotFound
	}
	collateralPrice, ok := p.Feed.TWAP(position.CollateralToken, TWAPPeriod)
	if !ok {
		return 0, ErrNoCollateralPrice
	}
	borrowedPrice, ok := p.Feed.TWAP(position.BorrowedToken, TWAPPeriod)
	if !ok {
		return 0, ErrNoBorrowedPrice
	}
	spot, ok := p.Feed.Spot(position.CollateralToken)
	if !ok {
		return 0, ErrNoSpotPrice
	}
	maxDeviation := collateralPrice * MaxDeviation / 100
	if spot > collateralPrice+maxDeviation || spot+maxDeviation < collateralPrice {
		return 0, ErrSuspiciousPrice
	}
	return p.liquidate(id, position, collateralPrice, borrowedPrice)
}
