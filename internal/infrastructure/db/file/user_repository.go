package file

import (
	"context"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
)

// UserRepository implements the user storage contract over a file Store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByUserName(_ context.Context, userName string) result.Result[user.BankUser] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[user.BankUser]("read user store: %s", err)
	}

	for _, u := range doc.Users {
		if u.UserName == userName {
			return result.OK(u)
		}
	}

	return result.NotFoundf[user.BankUser]("no user exists with name %q", userName)
}

func (r *UserRepository) GetByID(_ context.Context, id string) result.Result[user.BankUser] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[user.BankUser]("read user store: %s", err)
	}

	for _, u := range doc.Users {
		if u.ID == id {
			return result.OK(u)
		}
	}

	return result.NotFoundf[user.BankUser]("no user exists with id %q", id)
}

func (r *UserRepository) Create(_ context.Context, u *user.BankUser) result.Result[user.BankUser] {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return result.DataStoreErrorf[user.BankUser]("read user store: %s", err)
	}

	for _, stored := range doc.Users {
		if stored.UserName == u.UserName {
			return result.Duplicatef[user.BankUser](
				"unable to create user: user name %q already exists", u.UserName)
		}
	}

	doc.Users = append(doc.Users, *u)

	if err = r.store.save(doc); err != nil {
		return result.DataStoreErrorf[user.BankUser]("write user store: %s", err)
	}

	return result.OK(*u)
}
