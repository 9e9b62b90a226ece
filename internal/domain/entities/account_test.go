package entities_test

import (
	"testing"

	"github.com/PZavyalov/bank-account-service/internal/application/errs"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPinHashing(t *testing.T) {
	hash, err := entities.HashPin("4321", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "4321", hash)

	account := entities.Account{PinHash: hash}
	assert.True(t, account.VerifyPin("4321"))
	assert.False(t, account.VerifyPin("1234"))
	assert.False(t, account.VerifyPin(""))
}

func TestNewAccountNumber(t *testing.T) {
	number, err := entities.NewAccountNumber(1001)
	require.NoError(t, err)
	assert.Equal(t, entities.AccountNumber(1001), number)

	_, err = entities.NewAccountNumber(0)
	assert.ErrorIs(t, err, errs.ErrInvalidAccountNumber)

	_, err = entities.NewAccountNumber(-1)
	assert.ErrorIs(t, err, errs.ErrInvalidAccountNumber)
}
