package accesscontrol

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rscanner/internal/testbed"
)

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

func sign(t *testing.T, key *ecdsa.PrivateKey) *Transaction {
	t.Helper()
	tx, err := SignTransaction(key, 1)
	require.NoError(t, err)
	return tx
}

func Test_TransactionValid(t *testing.T) {
	key := newKey(t)
	tx := sign(t, key)
	assert.True(t, tx.Valid())
	assert.Equal(t, testbed.PubkeyAddress(&key.PublicKey), tx.Caller)

	forged := *tx
	forged.Caller = testbed.AddressOf(3)
	assert.False(t, forged.Valid())

	replayed := *tx
	replayed.Nonce = 2
	assert.False(t, replayed.Valid())

	unsigned := &Transaction{Caller: tx.Caller}
	assert.False(t, unsigned.Valid())

	var missing *Transaction
	assert.False(t, missing.Valid())
}

func Test_VulnerableProtocol(t *testing.T) {
	admin := testbed.AddressOf(1)
	user := testbed.AddressOf(2)
	attacker := testbed.AddressOf(3)
	protocol := NewVulnerableProtocol(admin)

	require.NoError(t, protocol.SetFee(5000))
	assert.Equal(t, uint64(5000), protocol.FeeBasisPoint)
	assert.Equal(t, ErrFeeTooHigh, protocol.SetFee(MaxFeeBasisPoints+1))

	protocol.Accounts[user] = &UserAccount{Owner: user, Balance: 1000, Settings: UserSettings{WithdrawLimit: 100}}

	// anyone who knows the owner key can pass it
	require.NoError(t, protocol.UpdateSettings(user, user, UserSettings{AutoCompound: true, WithdrawLimit: 1000}))
	assert.Equal(t, uint64(1000), protocol.Accounts[user].Settings.WithdrawLimit)

	assert.Equal(t, ErrNotOwner, protocol.UpdateSettings(user, attacker, UserSettings{}))
	require.NoError(t, protocol.TransferOwnership(user, user, attacker))
	assert.Equal(t, attacker, protocol.Accounts[user].Owner)
	assert.Equal(t, ErrAccountNotFound, protocol.TransferOwnership(admin, admin, attacker))
}

func Test_SecureProtocolFee(t *testing.T) {
	adminKey, attackerKey := newKey(t), newKey(t)
	adminTx := sign(t, adminKey)
	protocol := NewSecureProtocol(adminTx.Caller)

	assert.EqualError(t, protocol.SetFee(sign(t, attackerKey), 5000), "Only admin can change fee percentage")

	forged := *adminTx
	forged.Signature = sign(t, attackerKey).Signature
	assert.Equal(t, ErrInvalidTransaction, protocol.SetFee(&forged, 5000))

	assert.Equal(t, ErrFeeTooHigh, protocol.SetFee(adminTx, MaxFeeBasisPoints+1))
	require.NoError(t, protocol.SetFee(adminTx, 20))
	assert.Equal(t, uint64(20), protocol.FeeBasisPoint)
}

func Test_SecureProtocolSettings(t *testing.T) {
	ownerKey, signerKey, attackerKey := newKey(t), newKey(t), newKey(t)
	ownerTx, signerTx, attackerTx := sign(t, ownerKey), sign(t, signerKey), sign(t, attackerKey)

	protocol := NewSecureProtocol(testbed.AddressOf(1))
	accountID := ownerTx.Caller
	protocol.Accounts[accountID] = &UserAccount{Owner: accountID, Signers: []testbed.Address{signerTx.Caller}}

	tests := []struct {
		name     string
		tx       *Transaction
		account  testbed.Address
		settings UserSettings
		err      error
	}{
		{"owner", ownerTx, accountID, UserSettings{WithdrawLimit: 10}, nil},
		{"signer", signerTx, accountID, UserSettings{AutoCompound: true}, nil},
		{"attacker", attackerTx, accountID, UserSettings{}, ErrNotAuthorized},
		{"unsigned", &Transaction{Caller: accountID}, accountID, UserSettings{}, ErrInvalidTransaction},
		{"limit", ownerTx, accountID, UserSettings{WithdrawLimit: MaxWithdrawLimit + 1}, ErrWithdrawLimit},
		{"unknown account", ownerTx, testbed.AddressOf(9), UserSettings{}, ErrAccountNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.err, protocol.UpdateSettings(tt.tx, tt.account, tt.settings))
		})
	}
	assert.True(t, protocol.Accounts[accountID].Settings.AutoCompound)
}

func Test_SecureProtocolAdminTransfer(t *testing.T) {
	adminKey, newAdminKey := newKey(t), newKey(t)
	adminTx, newAdminTx := sign(t, adminKey), sign(t, newAdminKey)
	protocol := NewSecureProtocol(adminTx.Caller)

	assert.Equal(t, ErrNoPendingTransfer, protocol.CompleteAdminTransfer(newAdminTx))
	assert.Equal(t, ErrNotCurrentAdmin, protocol.InitiateAdminTransfer(newAdminTx, newAdminTx.Caller))

	require.NoError(t, protocol.InitiateAdminTransfer(adminTx, newAdminTx.Caller))
	assert.EqualError(t, protocol.CompleteAdminTransfer(newAdminTx), "Timelock has not expired yet")
	assert.Equal(t, ErrNoPendingTransfer, protocol.CompleteAdminTransfer(adminTx))

	protocol.Advance(AdminTimelock + 1)
	require.NoError(t, protocol.CompleteAdminTransfer(newAdminTx))
	assert.Equal(t, newAdminTx.Caller, protocol.Admin)
	assert.Equal(t, ErrNoPendingTransfer, protocol.CompleteAdminTransfer(newAdminTx))
}
