package interfaces

import (
	"context"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
)

// AuthService represents user registration and sign-in actions.
type AuthService interface {
	Register(ctx context.Context, userName, password, firstName, lastName string) (*user.BankUser, error)
	Login(ctx context.Context, userName, password string) (*user.BankUser, error)
	BuildAuthToken(userID string) (string, error)
	GetUserFromToken(ctx context.Context, token string) (*user.BankUser, error)
}
