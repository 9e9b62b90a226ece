package entities

import (
	"github.com/PZavyalov/bank-account-service/internal/application/errs"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Account is the top-level representation of a bank account.
//
// ID is an opaque identifier assigned once at creation and never
// mutated. Number is the human-facing unique account number, distinct
// from ID. Only Balance is ever changed by the transaction engine.
type Account struct {
	ID      string          `db:"id" json:"id"`
	Owner   string          `db:"owner" json:"owner"`
	PinHash string          `db:"pin_hash" json:"pin_hash"`
	Balance decimal.Decimal `db:"balance" json:"balance"`
	Number  AccountNumber   `db:"number" json:"number"`
}

// VerifyPin compares the supplied pin against the stored bcrypt hash.
func (a *Account) VerifyPin(pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PinHash), []byte(pin)) == nil
}

// HashPin produces a salted one-way hash of a pin for storage.
// Pins are never stored or compared in plaintext.
func HashPin(pin string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// AccountNumber identifies an account to customers.
type AccountNumber int

// NewAccountNumber validates a raw account number.
func NewAccountNumber(num int) (AccountNumber, error) {
	if num <= 0 {
		return 0, errs.ErrInvalidAccountNumber
	}

	return AccountNumber(num), nil
}
