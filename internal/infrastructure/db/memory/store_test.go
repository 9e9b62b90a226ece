package memory_test

import (
	"context"
	"testing"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/PZavyalov/bank-account-service/internal/infrastructure/db/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	repo := memory.NewAccountRepository(memory.NewStore())
	ctx := context.Background()

	account := &entities.Account{
		ID:      "a-1",
		Owner:   "jdoe",
		PinHash: "$2a$04$fakehashfakehashfakehash",
		Balance: decimal.RequireFromString("100"),
		Number:  1001,
	}

	require.True(t, repo.Create(ctx, account).Succeeded)
	assert.Equal(t, result.Duplicate, repo.Create(ctx, account).Kind)

	t.Run("reads return copies", func(t *testing.T) {
		res := repo.GetByNumber(ctx, 1001)
		require.True(t, res.Succeeded)

		// Mutating the returned value must not touch the stored record.
		res.Value.Balance = decimal.Zero

		again := repo.GetByNumber(ctx, 1001)
		require.True(t, again.Succeeded)
		assert.True(t, again.Value.Balance.Equal(decimal.RequireFromString("100")))
	})

	t.Run("update replaces the record", func(t *testing.T) {
		updated := *account
		updated.Balance = decimal.RequireFromString("60")

		require.True(t, repo.Update(ctx, &updated).Succeeded)

		res := repo.GetByID(ctx, "a-1")
		require.True(t, res.Succeeded)
		assert.True(t, res.Value.Balance.Equal(decimal.RequireFromString("60")))
	})

	t.Run("update of a missing account", func(t *testing.T) {
		missing := *account
		missing.Number = 9999
		assert.Equal(t, result.NotFound, repo.Update(ctx, &missing).Kind)
	})

	t.Run("delete", func(t *testing.T) {
		require.True(t, repo.Delete(ctx, account).Succeeded)
		assert.Equal(t, result.NotFound, repo.GetByNumber(ctx, 1001).Kind)
		assert.Equal(t, result.NotFound, repo.Delete(ctx, account).Kind)
	})
}

func TestUserRepository(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())
	ctx := context.Background()

	u := &user.BankUser{ID: "u-1", UserName: "jdoe", FirstName: "John", LastName: "Doe"}

	require.True(t, repo.Create(ctx, u).Succeeded)
	assert.Equal(t, result.Duplicate, repo.Create(ctx, u).Kind)

	res := repo.GetByUserName(ctx, "jdoe")
	require.True(t, res.Succeeded)
	assert.Equal(t, "u-1", res.Value.ID)

	res = repo.GetByID(ctx, "u-1")
	require.True(t, res.Succeeded)
	assert.Equal(t, "jdoe", res.Value.UserName)

	assert.Equal(t, result.NotFound, repo.GetByID(ctx, "u-2").Kind)
}
