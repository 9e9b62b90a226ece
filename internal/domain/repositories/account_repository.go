package repositories

import (
	"context"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
)

// AccountRepository is the storage contract the transaction engine
// depends on. Every backend must provide the same observable
// semantics:
//
//   - Create fails with Duplicate if an account with the same number
//     already exists.
//   - Update is the only mutation path for balances and is atomic from
//     the caller's point of view: either the full record is persisted
//     or the prior state is retained.
//   - Update and Delete fail with NotFound if no such record exists.
//   - Backend failures unrelated to business rules are DataStoreError.
type AccountRepository interface {
	GetByNumber(ctx context.Context, number entities.AccountNumber) result.Result[entities.Account]
	GetByID(ctx context.Context, id string) result.Result[entities.Account]
	GetAllByOwner(ctx context.Context, owner string) result.Result[[]entities.Account]
	Create(ctx context.Context, account *entities.Account) result.Result[entities.Account]
	Update(ctx context.Context, account *entities.Account) result.Result[entities.Account]
	Delete(ctx context.Context, account *entities.Account) result.Result[entities.Account]
}
