package uncheckedinputs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rscanner/internal/testbed"
)

var (
	alice = testbed.AddressOf(1)
	bob   = testbed.AddressOf(2)
)

func Test_VulnerableBankAcceptsBadInput(t *testing.T) {
	bank := NewVulnerableBank()
	bank.Accounts[alice] = &UserAccount{Owner: alice, Balance: 100}

	require.NoError(t, bank.Transfer(alice, bob, 0))
	require.NoError(t, bank.Transfer(alice, alice, 10))
	assert.Equal(t, uint64(100), bank.Accounts[alice].Balance)

	require.NoError(t, bank.AddDelegate(alice, alice))
	require.NoError(t, bank.AddDelegate(alice, alice))
	assert.Len(t, bank.Accounts[alice].Delegates, 2)

	assert.Equal(t, ErrAccountNotFound, bank.AddDelegate(testbed.AddressOf(7), bob))
}

func Test_SecureBankTransfer(t *testing.T) {
	tests := []struct {
		name      string
		sender    testbed.Address
		recipient testbed.Address
		amount    uint64
		err       error
	}{
		{"zero", alice, bob, 0, ErrZeroAmount},
		{"over limit", alice, bob, MaxTransfer + 1, ErrTransferLimit},
		{"self", alice, alice, 10, ErrSelfTransfer},
		{"unknown sender", testbed.AddressOf(9), bob, 10, ErrSenderNotFound},
		{"insufficient", alice, bob, 101, ErrInsufficientBalance},
		{"ok", alice, bob, 40, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := NewSecureBank()
			bank.Accounts[alice] = &UserAccount{Owner: alice, Balance: 100}
			assert.Equal(t, tt.err, bank.Transfer(tt.sender, tt.recipient, tt.amount))
		})
	}

	bank := NewSecureBank()
	bank.Accounts[alice] = &UserAccount{Owner: alice, Balance: 100}
	require.NoError(t, bank.Transfer(alice, bob, 40))
	assert.Equal(t, uint64(60), bank.Accounts[alice].Balance)
	assert.Equal(t, uint64(40), bank.Accounts[bob].Balance)
	assert.Equal(t, bob, bank.Accounts[bob].Owner)
	assert.EqualError(t, bank.Transfer(alice, bob, 0), "Amount must be greater than zero")
}

func Test_SecureBankAddDelegate(t *testing.T) {
	bank := NewSecureBank()
	bank.Accounts[alice] = &UserAccount{Owner: alice, Balance: 100}

	assert.EqualError(t, bank.AddDelegate(alice, alice), "Cannot add self as delegate")
	assert.Equal(t, ErrAccountNotFound, bank.AddDelegate(bob, alice))

	require.NoError(t, bank.AddDelegate(alice, bob))
	assert.Equal(t, ErrDuplicateDelegate, bank.AddDelegate(alice, bob))

	for i := byte(10); i < 14; i++ {
		require.NoError(t, bank.AddDelegate(alice, testbed.AddressOf(i)))
	}
	assert.Len(t, bank.Accounts[alice].Delegates, MaxDelegates)
	assert.Equal(t, ErrTooManyDelegates, bank.AddDelegate(alice, testbed.AddressOf(20)))
}
