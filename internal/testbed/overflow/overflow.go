// Package overflow is a token ledger with a 1% withdrawal fee.
package overflow

import (
	"math/bits"

	"github.com/pkg/errors"

	"rscanner/internal/testbed"
)

var (
	ErrAccountNotFound      = errors.New("Account not found")
	ErrInsufficientBalance  = errors.New("Insufficient balance")
	ErrOverflow             = errors.New("Arithmetic overflow detected")
	ErrFeeOverflow          = errors.New("Arithmetic overflow detected in fee calculation")
	ErrInsufficientWithFees = errors.New("Insufficient balance including fees")
)

// FeeDivisor makes the fee 1% of the amount.
const FeeDivisor = 100

type TokenAccount struct {
	Balance uint64
}

type VulnerableLedger struct {
	Accounts map[testbed.Address]*TokenAccount
}

func NewVulnerableLedger() *VulnerableLedger {
	return &VulnerableLedger{Accounts: make(map[testbed.Address]*TokenAccount)}
}

func (l *VulnerableLedger) account(id testbed.Address) *TokenAccount {
	account, ok := l.Accounts[id]
	if !ok {
		account = &TokenAccount{}
		l.Accounts[id] = account
	}
	return account
}

// AddTokens wraps around silently.
func (l *VulnerableLedger) AddTokens(id testbed.Address, amount uint64) error {
	l.account(id).Balance += amount
	return nil
}

// RemoveTokens checks the amount but not the fee, so the debit can wrap.
func (l *VulnerableLedger) RemoveTokens(id testbed.Address, amount uint64) error {
	account, ok := l.Accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	if account.Balance < amount {
		return ErrInsufficientBalance
	}
	fee := amount / FeeDivisor
	account.Balance -= amount + fee
	return nil
}

type SecureLedger struct {
	Accounts map[testbed.Address]*TokenAccount
}

func NewSecureLedger() *SecureLedger {
	return &SecureLedger{Accounts: make(map[testbed.Address]*TokenAccount)}
}

func (l *SecureLedger) AddTokens(id testbed.Address, amount uint64) error {
	account, ok := l.Accounts[id]
	if !ok {
		account = &TokenAccount{}
		l.Accounts[id] = account
	}
	sum, carry := bits.Add64(account.Balance, amount, 0)
	if carry != 0 {
		return ErrOverflow
	}
	account.Balance = sum
	return nil
}

func (l *SecureLedger) RemoveTokens(id testbed.Address, amount uint64) error {
	account, ok := l.Accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	total, carry := bits.Add64(amount, amount/FeeDivisor, 0)
	if carry != 0 {
		return ErrFeeOverflow
	}
	if account.Balance < total {
		return ErrInsufficientWithFees
	}
	account.Balance -= total
	return nil
}
