// Package uncheckedinputs is a bank with transfers and delegates. The
// vulnerable bank trusts its arguments; the secure one validates them.
package uncheckedinputs

import (
	"github.com/pkg/errors"

	"rscanner/internal/testbed"
)

const (
	MaxTransfer  uint64 = 1_000_000_000_000
	MaxDelegates        = 5
)

var (
	ErrZeroAmount          = errors.New("Amount must be greater than zero")
	ErrTransferLimit       = errors.New("Amount exceeds maximum transfer limit")
	ErrSelfTransfer        = errors.New("Cannot transfer to self")
	ErrSenderNotFound      = errors.New("Sender account not found")
	ErrInsufficientBalance = errors.New("Insufficient balance")
	ErrAccountNotFound     = errors.New("Account not found")
	ErrSelfDelegate        = errors.New("Cannot add self as delegate")
	ErrDuplicateDelegate   = errors.New("Delegate already authorized")
	ErrTooManyDelegates    = errors.New("Maximum number of delegates reached")
)

type UserAccount struct {
	Owner     testbed.Address
	Balance   uint64
	Delegates []testbed.Address
}

type accounts map[testbed.Address]*UserAccount

func (a accounts) move(sender, recipient testbed.Address, amount uint64) error {
	from, ok := a[sender]
	if !ok {
		return ErrSenderNotFound
	}
	if from.Balance < amount {
		return ErrInsufficientBalance
	}
	from.Balance -= amount
	to, ok := a[recipient]
	if !ok {
		to = &UserAccount{Owner: recipient}
		a[recipient] = to
	}
	to.Balance += amount
	return nil
}

type VulnerableBank struct {
	Accounts map[testbed.Address]*UserAccount
}

func NewVulnerableBank() *VulnerableBank {
	return &VulnerableBank{Accounts: make(map[testbed.Address]*UserAccount)}
}

// Transfer accepts zero, huge and self transfers.
func (b *VulnerableBank) Transfer(sender, recipient testbed.Address, amount uint64) error {
	return accounts(b.Accounts).move(sender, recipient, amount)
}

// AddDelegate accepts the owner, duplicates and any number of delegates.
func (b *VulnerableBank) AddDelegate(account, delegate testbed.Address) error {
	user, ok := b.Accounts[account]
	if !ok {
		return ErrAccountNotFound
	}
	user.Delegates = append(user.Delegates, delegate)
	return nil
}

type SecureBank struct {
	Accounts map[testbed.Address]*UserAccount
}

func NewSecureBank() *SecureBank {
	return &SecureBank{Accounts: make(map[testbed.Address]*UserAccount)}
}

func (b *SecureBank) Transfer(sender, recipient testbed.Address, amount uint64) error {
	switch {
	case amount == 0:
		return ErrZeroAmount
	case amount > MaxTransfer:
		return ErrTransferLimit
	case sender == recipient:
		return ErrSelfTransfer
	}
	return accounts(b.Accounts).move(sender, recipient, amount)
}

func (b *SecureBank) AddDelegate(account, delegate testbed.Address) error {
	if account == delegate {
		return ErrSelfDelegate
	}
	user, ok := b.Accounts[account]
	if !ok {
		return ErrAccountNotFound
	}
	for _, d := range user.Delegates {
		if d == delegate {
			return ErrDuplicateDelegate
		}
	}
	if len(user.Delegates) >= MaxDelegates {
		return ErrTooManyDelegates
	}
	user.Delegates = append(user.Delegates, delegate)
	return nil
}
