package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*UserRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &UserRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) result.Result[user.BankUser] {
	const query = `
		SELECT id, user_name, first_name, last_name, password_hash, created_at, updated_at
		FROM users WHERE user_name = $1;
	`

	u := new(user.BankUser)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, userName).Scan(
		&u.ID,
		&u.UserName,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFoundf[user.BankUser]("no user exists with name %q", userName)
		}
		return result.DataStoreErrorf[user.BankUser]("get user %q: %s", userName, err)
	}

	return result.OK(*u)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) result.Result[user.BankUser] {
	const query = `
		SELECT id, user_name, first_name, last_name, password_hash, created_at, updated_at
		FROM users WHERE id = $1;
	`

	u := new(user.BankUser)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.UserName,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFoundf[user.BankUser]("no user exists with id %q", id)
		}
		return result.DataStoreErrorf[user.BankUser]("get user %q: %s", id, err)
	}

	return result.OK(*u)
}

func (r *UserRepository) Create(ctx context.Context, u *user.BankUser) result.Result[user.BankUser] {
	const query = `
		INSERT INTO users (id, user_name, first_name, last_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		u.ID, u.UserName, u.FirstName, u.LastName, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return result.Duplicatef[user.BankUser](
				"unable to create user: user name %q already exists", u.UserName)
		}
		return result.DataStoreErrorf[user.BankUser]("create user %q: %s", u.UserName, err)
	}

	return result.OK(*u)
}
