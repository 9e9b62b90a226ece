package params

import (
	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// Withdraw carries the inputs of a withdrawal keyed by internal
// account id.
type Withdraw struct {
	AccountID string
	Pin       string
	Amount    decimal.Decimal
}

func NewWithdraw(accountID, pin string, amount decimal.Decimal) *Withdraw {
	return &Withdraw{AccountID: accountID, Pin: pin, Amount: amount}
}

// Deposit carries the inputs of a deposit into an account number.
// FirstName and LastName are optional: when set, the names must match
// the user owning the destination account.
type Deposit struct {
	FirstName string
	LastName  string
	Number    entities.AccountNumber
	Amount    decimal.Decimal
}

func NewDeposit(number entities.AccountNumber, amount decimal.Decimal) *Deposit {
	return &Deposit{Number: number, Amount: amount}
}

func NewVerifiedDeposit(firstName, lastName string, number entities.AccountNumber, amount decimal.Decimal) *Deposit {
	return &Deposit{FirstName: firstName, LastName: lastName, Number: number, Amount: amount}
}

// Transfer carries the inputs of a transfer between two account
// numbers. DestFirstName and DestLastName are optional destination
// identity checks, as in Deposit.
type Transfer struct {
	Pin           string
	DestFirstName string
	DestLastName  string
	Source        entities.AccountNumber
	Destination   entities.AccountNumber
	Amount        decimal.Decimal
}

func NewTransfer(source entities.AccountNumber, pin string, destination entities.AccountNumber, amount decimal.Decimal) *Transfer {
	return &Transfer{Source: source, Pin: pin, Destination: destination, Amount: amount}
}

// OpenAccount carries the inputs of the account opening flow.
type OpenAccount struct {
	Owner   string
	Pin     string
	Number  entities.AccountNumber
	Deposit decimal.Decimal
}

func NewOpenAccount(owner, pin string, number entities.AccountNumber, deposit decimal.Decimal) *OpenAccount {
	return &OpenAccount{Owner: owner, Pin: pin, Number: number, Deposit: deposit}
}
