// Package denialofservice is an auction that refunds outbid bidders. The
// vulnerable auction pushes every refund when it ends, so one failing refund
// or an oversized bid list keeps it open forever. The secure one caps the
// bidders, keeps one entry per bidder and lets refunds be pulled or
// processed in bounded batches.
package denialofservice

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"rscanner/internal/testbed"
)

var (
	ErrAuctionEnded   = errors.New("Auction already ended")
	ErrBidTooLow      = errors.New("Bid too low")
	ErrMaxBidders     = errors.New("Maximum number of bidders reached")
	ErrNotEnded       = errors.New("Auction not ended yet")
	ErrHighestBidder  = errors.New("Highest bidder cannot claim refund")
	ErrNoBid          = errors.New("No bid found for this bidder")
	ErrTooManyRefunds = errors.New("Too many refunds for one call")
)

// RefundFunc stands in for the transfer back to an outbid bidder; a
// malicious recipient makes it fail.
type RefundFunc func(bidder testbed.Address, amount uint64) error

type Bid struct {
	Bidder testbed.Address
	Amount uint64
}

// VulnerableAuction keeps every bid, duplicates included. ComputeLimit is
// the number of refunds one EndAuction call can afford; zero means
// unlimited.
type VulnerableAuction struct {
	HighestBidder testbed.Address
	HighestBid    uint64
	Bids          []Bid
	Ended         bool
	Refund        RefundFunc
	ComputeLimit  int
}

func NewVulnerableAuction(refund RefundFunc) *VulnerableAuction {
	return &VulnerableAuction{Refund: refund}
}

func (a *VulnerableAuction) PlaceBid(bidder testbed.Address, amount uint64) error {
	if a.Ended {
		return ErrAuctionEnded
	}
	if amount <= a.HighestBid {
		return ErrBidTooLow
	}
	a.HighestBidder = bidder
	a.HighestBid = amount
	a.Bids = append(a.Bids, Bid{Bidder: bidder, Amount: amount})
	return nil
}

// EndAuction refunds every losing bid in one go. Any failure, or more
// refunds than ComputeLimit, reverts the call and leaves the auction open.
func (a *VulnerableAuction) EndAuction() error {
	if a.Ended {
		return ErrAuctionEnded
	}
	var losing []Bid
	for _, bid := range a.Bids {
		if bid.Bidder != a.HighestBidder {
			losing = append(losing, bid)
		}
	}
	if a.ComputeLimit > 0 && len(losing) > a.ComputeLimit {
		return ErrTooManyRefunds
	}
	for _, bid := range losing {
		if a.Refund == nil {
			continue
		}
		if err := a.Refund(bid.Bidder, bid.Amount); err != nil {
			return err
		}
	}
	a.Ended = true
	return nil
}

type SecureAuction struct {
	HighestBidder testbed.Address
	HighestBid    uint64
	MaxBidders    int
	Ended         bool
	Refund        RefundFunc

	amounts map[testbed.Address]uint64
	queue   []testbed.Address // refund order; failed refunds move to the back
}

func NewSecureAuction(maxBidders int, refund RefundFunc) *SecureAuction {
	return &SecureAuction{
		MaxBidders: maxBidders,
		Refund:     refund,
		amounts:    make(map[testbed.Address]uint64),
	}
}

func (a *SecureAuction) PlaceBid(bidder testbed.Address, amount uint64) error {
	if a.Ended {
		return ErrAuctionEnded
	}
	if amount <= a.HighestBid {
		return ErrBidTooLow
	}
	if _, ok := a.amounts[bidder]; !ok {
		if len(a.amounts) >= a.MaxBidders {
			return ErrMaxBidders
		}
		a.queue = append(a.queue, bidder)
	}
	a.HighestBidder = bidder
	a.HighestBid = amount
	a.amounts[bidder] = amount
	return nil
}

// Bidders is the number of distinct bidders holding a refundable bid or
// the winning one.
func (a *SecureAuction) Bidders() int {
	return len(a.amounts)
}

// EndAuction only closes the auction; refunds are pulled afterwards.
func (a *SecureAuction) EndAuction() error {
	if a.Ended {
		return ErrAuctionEnded
	}
	a.Ended = true
	return nil
}

// ClaimRefund pays back one outbid bidder and forgets the bid.
func (a *SecureAuction) ClaimRefund(bidder testbed.Address) (uint64, error) {
	if !a.Ended {
		return 0, ErrNotEnded
	}
	if bidder == a.HighestBidder {
		return 0, ErrHighestBidder
	}
	amount, ok := a.amounts[bidder]
	if !ok {
		return 0, ErrNoBid
	}
	if err := a.pay(bidder, amount); err != nil {
		return 0, err
	}
	a.forget(bidder)
	return amount, nil
}

// ProcessRefundBatch attempts at most limit refunds and returns how many
// succeeded. A failed refund does not stop the batch; the bidder stays
// claimable and moves to the back of the queue.
func (a *SecureAuction) ProcessRefundBatch(limit int) (int, error) {
	if !a.Ended {
		return 0, ErrNotEnded
	}
	var (
		refunded int
		attempts int
		failed   []testbed.Address
		pending  []testbed.Address
	)
	for _, bidder := range a.queue {
		if bidder == a.HighestBidder || attempts >= limit {
			pending = append(pending, bidder)
			continue
		}
		attempts++
		if err := a.pay(bidder, a.amounts[bidder]); err != nil {
			log.Debugf("refund to %s failed: %v", bidder, err)
			failed = append(failed, bidder)
			continue
		}
		delete(a.amounts, bidder)
		refunded++
	}
	a.queue = append(pending, failed...)
	return refunded, nil
}

func (a *SecureAuction) pay(bidder testbed.Address, amount uint64) error {
	if a.Refund == nil {
		return nil
	}
	return a.Refund(bidder, amount)
}

func (a *SecureAuction) forget(bidder testbed.Address) {
	delete(a.amounts, bidder)
	for i, queued := range a.queue {
		if queued == bidder {
			a.queue = append(a.queue[:i], a.queue[i+1:]...)
			return
		}
	}
}
