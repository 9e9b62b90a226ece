package repositories

import (
	"context"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
)

// UserRepository provides lookups of the bank users owning accounts.
// UserName is unique across the store.
type UserRepository interface {
	GetByUserName(ctx context.Context, userName string) result.Result[user.BankUser]
	GetByID(ctx context.Context, id string) result.Result[user.BankUser]
	Create(ctx context.Context, u *user.BankUser) result.Result[user.BankUser]
}
