// Package memory provides process-local repositories satisfying the
// storage contract. Intended for tests and single-node development
// setups.
package memory

import (
	"context"
	"sync"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
)

// Store holds the account and user record sets. A single mutex guards
// every read-modify-write sequence so interleaved updates from
// concurrent callers cannot be observed.
type Store struct {
	mu       sync.RWMutex
	accounts map[entities.AccountNumber]entities.Account
	users    map[string]user.BankUser // keyed by userName
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[entities.AccountNumber]entities.Account),
		users:    make(map[string]user.BankUser),
	}
}

// AccountRepository implements the account storage contract over a Store.
type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) GetByNumber(_ context.Context, number entities.AccountNumber) result.Result[entities.Account] {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[number]
	if !ok {
		return result.NotFoundf[entities.Account]("no account exists with account number %d", number)
	}

	return result.OK(account)
}

func (r *AccountRepository) GetByID(_ context.Context, id string) result.Result[entities.Account] {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, account := range r.store.accounts {
		if account.ID == id {
			return result.OK(account)
		}
	}

	return result.NotFoundf[entities.Account]("no account exists with id %q", id)
}

func (r *AccountRepository) GetAllByOwner(_ context.Context, owner string) result.Result[[]entities.Account] {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]entities.Account, 0)
	for _, account := range r.store.accounts {
		if account.Owner == owner {
			accounts = append(accounts, account)
		}
	}

	return result.OK(accounts)
}

func (r *AccountRepository) Create(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.Number]; ok {
		return result.Duplicatef[entities.Account](
			"unable to create account: account number %d already exists", account.Number)
	}

	r.store.accounts[account.Number] = *account

	return result.OK(*account)
}

func (r *AccountRepository) Update(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.Number]; !ok {
		return result.NotFoundf[entities.Account](
			"unable to update account: no account exists with account number %d", account.Number)
	}

	r.store.accounts[account.Number] = *account

	return result.OK(*account)
}

func (r *AccountRepository) Delete(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.accounts[account.Number]
	if !ok {
		return result.NotFoundf[entities.Account](
			"unable to delete account: no account exists with account number %d", account.Number)
	}

	delete(r.store.accounts, account.Number)

	return result.OK(stored)
}

// UserRepository implements the user storage contract over a Store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByUserName(_ context.Context, userName string) result.Result[user.BankUser] {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userName]
	if !ok {
		return result.NotFoundf[user.BankUser]("no user exists with name %q", userName)
	}

	return result.OK(u)
}

func (r *UserRepository) GetByID(_ context.Context, id string) result.Result[user.BankUser] {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.ID == id {
			return result.OK(u)
		}
	}

	return result.NotFoundf[user.BankUser]("no user exists with id %q", id)
}

func (r *UserRepository) Create(_ context.Context, u *user.BankUser) result.Result[user.BankUser] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[u.UserName]; ok {
		return result.Duplicatef[user.BankUser](
			"unable to create user: user name %q already exists", u.UserName)
	}

	r.store.users[u.UserName] = *u

	return result.OK(*u)
}
