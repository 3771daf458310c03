// Package reentrancy is a vault whose withdraw makes an external transfer
// call. The vulnerable vault updates the balance after the call, the secure
// one before it and behind a lock.
package reentrancy

import (
	"github.com/pkg/errors"

	"rscanner/internal/testbed"
)

var (
	ErrAccountNotFound     = errors.New("Account not found")
	ErrInsufficientBalance = errors.New("Insufficient balance")
	ErrReentrantCall       = errors.New("Reentrant call detected")
)

type VaultAccount struct {
	Owner   testbed.Address
	Balance uint64
}

// TransferHook stands in for the cross-program invocation; it may call
// back into the vault.
type TransferHook func(from, to testbed.Address, amount uint64) error

type VulnerableVault struct {
	Accounts   map[testbed.Address]*VaultAccount
	OnTransfer TransferHook
}

func NewVulnerableVault() *VulnerableVault {
	return &VulnerableVault{
		Accounts: make(map[testbed.Address]*VaultAccount),
	}
}

// Withdraw calls out before it debits the caller.
func (v *VulnerableVault) Withdraw(caller, recipient testbed.Address, amount uint64) error {
	account, ok := v.Accounts[caller]
	if !ok {
		return ErrAccountNotFound
	}
	if account.Balance < amount {
		return ErrInsufficientBalance
	}
	if v.OnTransfer != nil {
		if err := v.OnTransfer(caller, recipient, amount); err != nil {
			return err
		}
	}
	// wraps on a reentrant drain
	account.Balance -= amount
	return nil
}

type SecureVault struct {
	Accounts   map[testbed.Address]*VaultAccount
	OnTransfer TransferHook
	// Locked is held for the duration of Withdraw.
	Locked bool
}

func NewSecureVault() *SecureVault {
	return &SecureVault{
		Accounts: make(map[testbed.Address]*VaultAccount),
	}
}

// Withdraw debits the caller before the transfer call and rejects reentry.
func (v *SecureVault) Withdraw(caller, recipient testbed.Address, amount uint64) error {
	if v.Locked {
		return ErrReentrantCall
	}
	v.Locked = true
	defer func() { v.Locked = false }()

	account, ok := v.Accounts[caller]
	if !ok {
		return ErrAccountNotFound
	}
	if account.Balance < amount {
		return ErrInsufficientBalance
	}
	account.Balance -= amount

	if v.OnTransfer != nil {
		return v.OnTransfer(caller, recipient, amount)
	}
	return nil
}
