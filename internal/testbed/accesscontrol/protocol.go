// Package accesscontrol is a protocol with an admin-set fee and per-user
// settings. The vulnerable protocol lets anyone change the fee and trusts a
// caller key passed as an argument; the secure one verifies signed
// transactions, checks roles and timelocks admin handover.
package accesscontrol

import (
	"github.com/pkg/errors"

	"rscanner/internal/testbed"
)

const (
	MaxFeeBasisPoints            = 10000
	DefaultFeeBasisPoints        = 10
	MaxWithdrawLimit      uint64 = 1_000_000_000
	AdminTimelock         uint64 = 86400
)

var (
	ErrFeeTooHigh         = errors.New("Fee percentage too high")
	ErrAccountNotFound    = errors.New("Account not found")
	ErrNotOwner           = errors.New("Not the account owner")
	ErrInvalidTransaction = errors.New("Invalid transaction")
	ErrNotAdmin           = errors.New("Only admin can change fee percentage")
	ErrNotAuthorized      = errors.New("Not authorized to update settings")
	ErrWithdrawLimit      = errors.New("Withdraw limit too high")
	ErrNotCurrentAdmin    = errors.New("Only current admin can initiate transfer")
	ErrTimelock           = errors.New("Timelock has not expired yet")
	ErrNoPendingTransfer  = errors.New("Not the pending admin or no admin transfer in progress")
)

type UserSettings struct {
	AutoCompound  bool
	WithdrawLimit uint64
}

type UserAccount struct {
	Owner    testbed.Address
	Balance  uint64
	Settings UserSettings
	// Signers may act for the owner.
	Signers []testbed.Address
}

type VulnerableProtocol struct {
	Admin         testbed.Address
	FeeBasisPoint uint64
	Accounts      map[testbed.Address]*UserAccount
}

func NewVulnerableProtocol(admin testbed.Address) *VulnerableProtocol {
	return &VulnerableProtocol{
		Admin:         admin,
		FeeBasisPoint: DefaultFeeBasisPoints,
		Accounts:      make(map[testbed.Address]*UserAccount),
	}
}

// SetFee has no caller at all.
func (p *VulnerableProtocol) SetFee(fee uint64) error {
	if fee > MaxFeeBasisPoints {
		return ErrFeeTooHigh
	}
	p.FeeBasisPoint = fee
	return nil
}

// UpdateSettings compares an unauthenticated caller key with the owner.
func (p *VulnerableProtocol) UpdateSettings(accountID, caller testbed.Address, settings UserSettings) error {
	account, ok := p.Accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if account.Owner != caller {
		return ErrNotOwner
	}
	account.Settings = settings
	return nil
}

// TransferOwnership has the same flaw and accepts any new owner.
func (p *VulnerableProtocol) TransferOwnership(accountID, caller, newOwner testbed.Address) error {
	account, ok := p.Accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if account.Owner != caller {
		return ErrNotOwner
	}
	account.Owner = newOwner
	return nil
}

type SecureProtocol struct {
	Admin         testbed.Address
	FeeBasisPoint uint64
	Accounts      map[testbed.Address]*UserAccount
	CurrentTime   uint64

	pendingAdmin *testbed.Address
	changeTime   uint64
}

func NewSecureProtocol(admin testbed.Address) *SecureProtocol {
	return &SecureProtocol{
		Admin:         admin,
		FeeBasisPoint: DefaultFeeBasisPoints,
		Accounts:      make(map[testbed.Address]*UserAccount),
	}
}

func (p *SecureProtocol) SetFee(tx *Transaction, fee uint64) error {
	if !tx.Valid() {
		return ErrInvalidTransaction
	}
	if tx.Caller != p.Admin {
		return ErrNotAdmin
	}
	if fee > MaxFeeBasisPoints {
		return ErrFeeTooHigh
	}
	p.FeeBasisPoint = fee
	return nil
}

func (p *SecureProtocol) UpdateSettings(tx *Transaction, accountID testbed.Address, settings UserSettings) error {
	if !tx.Valid() {
		return ErrInvalidTransaction
	}
	account, ok := p.Accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if !account.authorized(tx.Caller) {
		return ErrNotAuthorized
	}
	if settings.WithdrawLimit > MaxWithdrawLimit {
		return ErrWithdrawLimit
	}
	account.Settings = settings
	return nil
}

func (a *UserAccount) authorized(caller testbed.Address) bool {
	if a.Owner == caller {
		return true
	}
	for _, signer := range a.Signers {
		if signer == caller {
			return true
		}
	}
	return false
}

// InitiateAdminTransfer starts the timelock; the new admin takes over with
// CompleteAdminTransfer once AdminTimelock seconds have passed.
func (p *SecureProtocol) InitiateAdminTransfer(tx *Transaction, newAdmin testbed.Address) error {
	if !tx.Valid() {
		return ErrInvalidTransaction
	}
	if tx.Caller != p.Admin {
		return ErrNotCurrentAdmin
	}
	p.pendingAdmin = &newAdmin
	p.changeTime = p.CurrentTime + AdminTimelock
	return nil
}

func (p *SecureProtocol) CompleteAdminTransfer(tx *Transaction) error {
	if !tx.Valid() {
		return ErrInvalidTransaction
	}
	if p.pendingAdmin == nil || *p.pendingAdmin != tx.Caller {
		return ErrNoPendingTransfer
	}
	if p.CurrentTime < p.changeTime {
		return ErrTimelock
	}
	p.Admin = *p.pendingAdmin
	p.pendingAdmin = nil
	p.changeTime = 0
	return nil
}

func (p *SecureProtocol) Advance(seconds uint64) {
	p.CurrentTime += seconds
}
