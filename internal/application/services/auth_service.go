package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PZavyalov/bank-account-service/internal/application/errs"
	"github.com/PZavyalov/bank-account-service/internal/application/interfaces"
	"github.com/PZavyalov/bank-account-service/internal/config"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/PZavyalov/bank-account-service/internal/jwt"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers bank users and verifies their credentials.
// Passwords are stored as bcrypt hashes.
type AuthService struct {
	userRepo repositories.UserRepository
	logger   logger.Logger
	config   *config.Config
}

func NewAuthService(
	userRepository repositories.UserRepository,
	logger logger.Logger,
	config *config.Config,
) (*AuthService, error) {
	if userRepository == nil {
		return nil, errors.New("nil dependency: user repository")
	}
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}
	return &AuthService{userRepo: userRepository, logger: logger, config: config}, nil
}

var _ interfaces.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, userName, password, firstName, lastName string) (*user.BankUser, error) {
	hashPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.config.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	u := &user.BankUser{
		ID:           uuid.NewString(),
		UserName:     userName,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created := s.userRepo.Create(ctx, u)
	if created.Failed() {
		if created.Kind == result.Duplicate {
			return nil, fmt.Errorf("%w: user name %q already exists", errs.ErrDataConflict, userName)
		}
		return nil, fmt.Errorf("create user: %s", created.Message)
	}

	return &created.Value, nil
}

func (s *AuthService) Login(ctx context.Context, userName, password string) (*user.BankUser, error) {
	found := s.userRepo.GetByUserName(ctx, userName)
	if found.Failed() {
		if found.Kind == result.NotFound {
			return nil, fmt.Errorf("%w: user with name %q not found",
				errs.ErrInvalidCredentials, userName)
		}
		return nil, fmt.Errorf("get user %q: %s", userName, found.Message)
	}

	err := bcrypt.CompareHashAndPassword([]byte(found.Value.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("%w: password", errs.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("compare passwords: %w", err)
	}

	return &found.Value, nil
}

func (s *AuthService) BuildAuthToken(userID string) (string, error) {
	return jwt.BuildString(userID, s.config.JWT.SigningKey, s.config.JWT.Expiration)
}

func (s *AuthService) GetUserFromToken(ctx context.Context, token string) (*user.BankUser, error) {
	userID, err := jwt.GetUserID(token, s.config.JWT.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCredentials, err)
	}

	found := s.userRepo.GetByID(ctx, userID)
	if found.Failed() {
		if found.Kind == result.NotFound {
			return nil, fmt.Errorf("%w: user %q", errs.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("get user %q: %s", userID, found.Message)
	}

	return &found.Value, nil
}
