package services_test

import (
	"context"
	"sync"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
)

// mockAccountRepository is an in-memory account store with an optional
// update failure hook for exercising storage error paths.
type mockAccountRepository struct {
	mu       sync.Mutex
	accounts map[entities.AccountNumber]entities.Account
	// When set, Update fails with DataStoreError for accounts the hook
	// reports true for.
	failUpdate func(a *entities.Account) bool
}

var _ repositories.AccountRepository = (*mockAccountRepository)(nil)

func newMockAccountRepository(accounts ...entities.Account) *mockAccountRepository {
	m := &mockAccountRepository{
		accounts: make(map[entities.AccountNumber]entities.Account, len(accounts)),
	}
	for _, a := range accounts {
		m.accounts[a.Number] = a
	}
	return m
}

func (m *mockAccountRepository) get(number entities.AccountNumber) (entities.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[number]
	return a, ok
}

func (m *mockAccountRepository) GetByNumber(_ context.Context, number entities.AccountNumber) result.Result[entities.Account] {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[number]
	if !ok {
		return result.NotFoundf[entities.Account]("no account exists with account number %d", number)
	}
	return result.OK(a)
}

func (m *mockAccountRepository) GetByID(_ context.Context, id string) result.Result[entities.Account] {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.ID == id {
			return result.OK(a)
		}
	}
	return result.NotFoundf[entities.Account]("no account exists with id %s", id)
}

func (m *mockAccountRepository) GetAllByOwner(_ context.Context, owner string) result.Result[[]entities.Account] {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts := make([]entities.Account, 0)
	for _, a := range m.accounts {
		if a.Owner == owner {
			accounts = append(accounts, a)
		}
	}
	return result.OK(accounts)
}

func (m *mockAccountRepository) Create(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.Number]; ok {
		return result.Duplicatef[entities.Account]("account number %d is already in use", account.Number)
	}
	m.accounts[account.Number] = *account
	return result.OK(*account)
}

func (m *mockAccountRepository) Update(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failUpdate != nil && m.failUpdate(account) {
		return result.DataStoreErrorf[entities.Account]("storage unavailable")
	}
	if _, ok := m.accounts[account.Number]; !ok {
		return result.NotFoundf[entities.Account]("no account exists with account number %d", account.Number)
	}
	m.accounts[account.Number] = *account
	return result.OK(*account)
}

func (m *mockAccountRepository) Delete(_ context.Context, account *entities.Account) result.Result[entities.Account] {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[account.Number]
	if !ok {
		return result.NotFoundf[entities.Account]("no account exists with account number %d", account.Number)
	}
	delete(m.accounts, account.Number)
	return result.OK(a)
}

// mockUserRepository is an in-memory user store keyed by user name.
type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]user.BankUser
}

var _ repositories.UserRepository = (*mockUserRepository)(nil)

func newMockUserRepository(users ...user.BankUser) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]user.BankUser, len(users))}
	for _, u := range users {
		m.users[u.UserName] = u
	}
	return m
}

func (m *mockUserRepository) GetByUserName(_ context.Context, userName string) result.Result[user.BankUser] {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userName]
	if !ok {
		return result.NotFoundf[user.BankUser]("no user exists with user name %s", userName)
	}
	return result.OK(u)
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) result.Result[user.BankUser] {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			return result.OK(u)
		}
	}
	return result.NotFoundf[user.BankUser]("no user exists with id %s", id)
}

func (m *mockUserRepository) Create(_ context.Context, u *user.BankUser) result.Result[user.BankUser] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.UserName]; ok {
		return result.Duplicatef[user.BankUser]("user name %s is already taken", u.UserName)
	}
	m.users[u.UserName] = *u
	return result.OK(*u)
}
