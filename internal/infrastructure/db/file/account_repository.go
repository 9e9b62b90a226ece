package file

import (
	"context"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
)

// AccountRepository implements the account storage contract over a
// file Store.
type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) GetByNumber(_ context.Context, number entities.AccountNumber) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[entities.Account]("read account store: %s", err)
	}

	for _, account := range doc.Accounts {
		if account.Number == number {
			return result.OK(account)
		}
	}

	return result.NotFoundf[entities.Account]("no account exists with account number %d", number)
}

func (r *AccountRepository) GetByID(_ context.Context, id string) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[entities.Account]("read account store: %s", err)
	}

	for _, account := range doc.Accounts {
		if account.ID == id {
			return result.OK(account)
		}
	}

	return result.NotFoundf[entities.Account]("no account exists with id %q", id)
}

func (r *AccountRepository) GetAllByOwner(_ context.Context, owner string) result.Result[[]entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[[]entities.Account]("read account store: %s", err)
	}

	accounts := make([]entities.Account, 0)
	for _, account := range doc.Accounts {
		if account.Owner == owner {
			accounts = append(accounts, account)
		}
	}

	return result.OK(accounts)
}

func (r *AccountRepository) Create(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[entities.Account]("read account store: %s", err)
	}

	for _, stored := range doc.Accounts {
		if stored.Number == account.Number {
			return result.Duplicatef[entities.Account](
				"unable to create account: account number %d already exists", account.Number)
		}
	}

	doc.Accounts = append(doc.Accounts, *account)

	if err = r.store.save(doc); err != nil {
		return result.DataStoreErrorf[entities.Account]("write account store: %s", err)
	}

	return result.OK(*account)
}

func (r *AccountRepository) Update(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[entities.Account]("read account store: %s", err)
	}

	for i, stored := range doc.Accounts {
		if stored.Number == account.Number {
			doc.Accounts[i] = *account

			if err = r.store.save(doc); err != nil {
				return result.DataStoreErrorf[entities.Account]("write account store: %s", err)
			}

			return result.OK(*account)
		}
	}

	return result.NotFoundf[entities.Account](
		"unable to update account: no account exists with account number %d", account.Number)
}

func (r *AccountRepository) Delete(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[entities.Account]("read account store: %s", err)
	}

	for i, stored := range doc.Accounts {
		if stored.Number == account.Number {
			doc.Accounts = append(doc.Accounts[:i], doc.Accounts[i+1:]...)

			if err = r.store.save(doc); err != nil {
				return result.DataStoreErrorf[entities.Account]("write account store: %s", err)
			}

			return result.OK(stored)
		}
	}

	return result.NotFoundf[entities.Account](
		"unable to delete account: no account exists with account number %d", account.Number)
}
