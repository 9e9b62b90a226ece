package interfaces

import (
	"context"

	"github.com/PZavyalov/bank-account-service/internal/application/params"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/shopspring/decimal"
)

// AccountService represents all transaction engine actions.
//
// Every operation returns the outcome envelope; no errors cross this
// boundary. Withdrawals and transfers-out require the account pin,
// deposits at most a destination identity check.
type AccountService interface {
	OpenAccount(ctx context.Context, p *params.OpenAccount) result.Result[entities.Account]
	CloseAccount(ctx context.Context, number entities.AccountNumber) result.Result[entities.Account]
	GetAccount(ctx context.Context, number entities.AccountNumber) result.Result[entities.Account]
	GetAccounts(ctx context.Context, owner string) result.Result[[]entities.Account]

	// Withdraw debits an account addressed by its internal id and
	// returns the updated account.
	Withdraw(ctx context.Context, p *params.Withdraw) result.Result[entities.Account]
	// WithdrawFromNumber debits an account addressed by its number and
	// returns the resulting balance.
	WithdrawFromNumber(ctx context.Context, number entities.AccountNumber, pin string, amount decimal.Decimal) result.Result[decimal.Decimal]

	// Deposit credits an account addressed by its number, optionally
	// verifying the owner's first and last name.
	Deposit(ctx context.Context, p *params.Deposit) result.Result[entities.Account]
	// DepositToID credits an account addressed by its internal id,
	// verifying that number matches the account's own number.
	DepositToID(ctx context.Context, id string, number entities.AccountNumber, amount decimal.Decimal) result.Result[entities.Account]

	// Transfer moves amount between two accounts and returns the
	// source balance after the withdrawal half.
	Transfer(ctx context.Context, p *params.Transfer) result.Result[decimal.Decimal]
}
