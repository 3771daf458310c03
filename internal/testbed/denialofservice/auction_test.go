package denialofservice

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rscanner/internal/testbed"
)

var (
	malicious = testbed.AddressOf(0xaa)
	errRefund = errors.New("Refund failed")
)

// refunds records successful refunds and rejects the malicious bidder.
type refunds map[testbed.Address]uint64

func (r refunds) pay(bidder testbed.Address, amount uint64) error {
	if bidder == malicious {
		return errRefund
	}
	r[bidder] += amount
	return nil
}

func Test_VulnerableAuctionStuck(t *testing.T) {
	paid := refunds{}
	auction := NewVulnerableAuction(paid.pay)
	require.NoError(t, auction.PlaceBid(malicious, 5))
	for i := 1; i <= 20; i++ {
		require.NoError(t, auction.PlaceBid(testbed.AddressOf(byte(i)), uint64(i*10)))
	}

	assert.Equal(t, errRefund, auction.EndAuction())
	assert.False(t, auction.Ended)
	assert.Equal(t, errRefund, auction.EndAuction())
	assert.False(t, auction.Ended)
}

func Test_VulnerableAuctionComputeLimit(t *testing.T) {
	paid := refunds{}
	auction := NewVulnerableAuction(paid.pay)
	for i := 1; i <= 20; i++ {
		require.NoError(t, auction.PlaceBid(testbed.AddressOf(byte(i)), uint64(i*10)))
	}
	auction.ComputeLimit = 10
	assert.Equal(t, ErrTooManyRefunds, auction.EndAuction())
	assert.False(t, auction.Ended)

	auction.ComputeLimit = 0
	require.NoError(t, auction.EndAuction())
	assert.True(t, auction.Ended)
	assert.Len(t, paid, 19)
	assert.Equal(t, uint64(10), paid[testbed.AddressOf(1)])
}

func Test_VulnerableAuctionBids(t *testing.T) {
	a, b := testbed.AddressOf(1), testbed.AddressOf(2)
	auction := NewVulnerableAuction(nil)
	require.NoError(t, auction.PlaceBid(a, 10))
	require.NoError(t, auction.PlaceBid(b, 20))
	require.NoError(t, auction.PlaceBid(a, 30))
	assert.Equal(t, ErrBidTooLow, auction.PlaceBid(b, 30))
	assert.Len(t, auction.Bids, 3)
	assert.Equal(t, a, auction.HighestBidder)

	require.NoError(t, auction.EndAuction())
	assert.Equal(t, ErrAuctionEnded, auction.EndAuction())
	assert.Equal(t, ErrAuctionEnded, auction.PlaceBid(b, 100))
}

func Test_SecureAuction(t *testing.T) {
	paid := refunds{}
	auction := NewSecureAuction(5, paid.pay)
	require.NoError(t, auction.PlaceBid(malicious, 5))
	for i := 1; i <= 4; i++ {
		require.NoError(t, auction.PlaceBid(testbed.AddressOf(byte(i)), uint64(i*10)))
	}
	assert.Equal(t, ErrMaxBidders, auction.PlaceBid(testbed.AddressOf(9), 100))
	// a known bidder can still raise
	require.NoError(t, auction.PlaceBid(testbed.AddressOf(1), 60))
	assert.Equal(t, 5, auction.Bidders())
	assert.Equal(t, ErrBidTooLow, auction.PlaceBid(testbed.AddressOf(2), 60))

	_, err := auction.ClaimRefund(testbed.AddressOf(2))
	assert.Equal(t, ErrNotEnded, err)
	_, err = auction.ProcessRefundBatch(10)
	assert.Equal(t, ErrNotEnded, err)

	require.NoError(t, auction.EndAuction())
	assert.True(t, auction.Ended)
	assert.Equal(t, ErrAuctionEnded, auction.EndAuction())
	assert.Equal(t, ErrAuctionEnded, auction.PlaceBid(testbed.AddressOf(3), 1000))

	_, err = auction.ClaimRefund(testbed.AddressOf(1))
	assert.Equal(t, ErrHighestBidder, err)
	amount, err := auction.ClaimRefund(testbed.AddressOf(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(20), amount)
	_, err = auction.ClaimRefund(testbed.AddressOf(2))
	assert.Equal(t, ErrNoBid, err)
	_, err = auction.ClaimRefund(malicious)
	assert.Equal(t, errRefund, err)
	assert.Equal(t, 4, auction.Bidders())
}

func Test_SecureAuctionRefundBatches(t *testing.T) {
	paid := refunds{}
	auction := NewSecureAuction(10, paid.pay)
	require.NoError(t, auction.PlaceBid(malicious, 5))
	for i := 1; i <= 4; i++ {
		require.NoError(t, auction.PlaceBid(testbed.AddressOf(byte(i)), uint64(i*10)))
	}
	require.NoError(t, auction.EndAuction())

	// the failing refund uses one slot of the batch but does not abort it
	n, err := auction.ProcessRefundBatch(2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, refunds{testbed.AddressOf(1): 10}, paid)

	n, err = auction.ProcessRefundBatch(10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, refunds{
		testbed.AddressOf(1): 10,
		testbed.AddressOf(2): 20,
		testbed.AddressOf(3): 30,
	}, paid)

	// left: the winner and the bidder whose refund keeps failing
	assert.Equal(t, 2, auction.Bidders())
	n, err = auction.ProcessRefundBatch(10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
