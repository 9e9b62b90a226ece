package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type AccountRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewAccountRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*AccountRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &AccountRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) GetByNumber(ctx context.Context, number entities.AccountNumber) result.Result[entities.Account] {
	const query = `
		SELECT id, owner, number, balance, pin_hash FROM accounts
		WHERE number = $1;
	`

	account := new(entities.Account)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, number).Scan(
		&account.ID,
		&account.Owner,
		&account.Number,
		&account.Balance,
		&account.PinHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFoundf[entities.Account]("no account exists with account number %d", number)
		}
		return result.DataStoreErrorf[entities.Account]("get account %d: %s", number, err)
	}

	return result.OK(*account)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) result.Result[entities.Account] {
	const query = `
		SELECT id, owner, number, balance, pin_hash FROM accounts
		WHERE id = $1;
	`

	account := new(entities.Account)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Owner,
		&account.Number,
		&account.Balance,
		&account.PinHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFoundf[entities.Account]("no account exists with id %q", id)
		}
		return result.DataStoreErrorf[entities.Account]("get account %q: %s", id, err)
	}

	return result.OK(*account)
}

func (r *AccountRepository) GetAllByOwner(ctx context.Context, owner string) result.Result[[]entities.Account] {
	const query = `
		SELECT id, owner, number, balance, pin_hash FROM accounts
		WHERE owner = $1
		ORDER BY number;
	`

	accounts := make([]entities.Account, 0)

	rows, err := r.getter.DefaultTrOrDB(ctx, r.db).QueryContext(ctx, query, owner)
	if err != nil {
		return result.DataStoreErrorf[[]entities.Account]("get accounts of %q: %s", owner, err)
	}

	defer func() {
		if err = rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	for rows.Next() {
		var account entities.Account
		err = rows.Scan(
			&account.ID,
			&account.Owner,
			&account.Number,
			&account.Balance,
			&account.PinHash,
		)
		if err != nil {
			return result.DataStoreErrorf[[]entities.Account]("get accounts of %q: %s", owner, err)
		}

		accounts = append(accounts, account)
	}

	// Rows.Err will report the last error encountered by Rows.Scan.
	if err = rows.Err(); err != nil {
		return result.DataStoreErrorf[[]entities.Account]("get accounts of %q: %s", owner, err)
	}

	return result.OK(accounts)
}

func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) result.Result[entities.Account] {
	const query = `
		INSERT INTO accounts (id, owner, number, balance, pin_hash)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).
		ExecContext(ctx, query, account.ID, account.Owner, account.Number, account.Balance, account.PinHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return result.Duplicatef[entities.Account](
				"unable to create account: account number %d already exists", account.Number)
		}
		return result.DataStoreErrorf[entities.Account]("create account %d: %s", account.Number, err)
	}

	return result.OK(*account)
}

// Update persists the full record in one statement, so readers observe
// either the prior or the updated state, never a partial write.
func (r *AccountRepository) Update(ctx context.Context, account *entities.Account) result.Result[entities.Account] {
	const query = `
		UPDATE accounts SET
			owner = $2,
			balance = $3,
			pin_hash = $4
		WHERE number = $1
			RETURNING id;
	`

	var id string

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		account.Number, account.Owner, account.Balance, account.PinHash).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFoundf[entities.Account](
				"unable to update account: no account exists with account number %d", account.Number)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return result.Duplicatef[entities.Account]("update account %d: %s", account.Number, err)
		}
		return result.DataStoreErrorf[entities.Account]("update account %d: %s", account.Number, err)
	}

	return result.OK(*account)
}

func (r *AccountRepository) Delete(ctx context.Context, account *entities.Account) result.Result[entities.Account] {
	const query = `
		DELETE FROM accounts WHERE number = $1
			RETURNING id, owner, number, balance, pin_hash;
	`

	deleted := new(entities.Account)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, account.Number).Scan(
		&deleted.ID,
		&deleted.Owner,
		&deleted.Number,
		&deleted.Balance,
		&deleted.PinHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFoundf[entities.Account](
				"unable to delete account: no account exists with account number %d", account.Number)
		}
		return result.DataStoreErrorf[entities.Account]("delete account %d: %s", account.Number, err)
	}

	return result.OK(*deleted)
}
