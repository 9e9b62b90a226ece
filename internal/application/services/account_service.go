package services

import (
	"context"
	"errors"
	"strings"

	"github.com/PZavyalov/bank-account-service/internal/application/interfaces"
	"github.com/PZavyalov/bank-account-service/internal/application/params"
	"github.com/PZavyalov/bank-account-service/internal/config"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/repositories"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService is the transaction engine. It validates inputs,
// loads accounts through the repository contract, applies the balance
// mutation and writes back via Update — never touching storage
// directly. A transfer composes a withdrawal with a deposit and either
// fully applies both halves or returns the withdrawn amount to the
// source before reporting failure.
type AccountService struct {
	accountRepo repositories.AccountRepository
	userRepo    repositories.UserRepository
	trm         Transactor
	locks       *accountLocks
	logger      logger.Logger
	hashCost    int
}

func NewAccountService(
	accountRepository repositories.AccountRepository,
	userRepository repositories.UserRepository,
	trm Transactor,
	logger logger.Logger,
	config *config.Config,
) (*AccountService, error) {
	if accountRepository == nil {
		return nil, errors.New("nil dependency: account repository")
	}
	if userRepository == nil {
		return nil, errors.New("nil dependency: user repository")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}
	return &AccountService{
		accountRepo: accountRepository,
		userRepo:    userRepository,
		trm:         trm,
		locks:       newAccountLocks(),
		logger:      logger,
		hashCost:    config.PasswordHashCost,
	}, nil
}

var _ interfaces.AccountService = (*AccountService)(nil)

// OpenAccount creates an account for an existing user. The id is
// assigned here, once, and the pin is stored as a salted hash.
func (s *AccountService) OpenAccount(ctx context.Context, p *params.OpenAccount) result.Result[entities.Account] {
	if strings.TrimSpace(p.Owner) == "" {
		return result.InvalidDataf[entities.Account]("invalid or missing 'owner' parameter")
	}
	if strings.TrimSpace(p.Pin) == "" {
		return result.InvalidDataf[entities.Account]("invalid or missing 'pin' parameter")
	}
	if p.Number <= 0 {
		return result.InvalidDataf[entities.Account]("invalid or missing 'number' parameter")
	}
	if p.Deposit.IsNegative() {
		return result.InvalidDataf[entities.Account]("opening deposit must not be negative")
	}

	owner := s.userRepo.GetByUserName(ctx, p.Owner)
	if owner.Failed() {
		return result.Fail[entities.Account](owner.Kind,
			"unable to open account for %q: %s", p.Owner, owner.Message)
	}

	pinHash, err := entities.HashPin(p.Pin, s.hashCost)
	if err != nil {
		return result.InvalidDataf[entities.Account]("invalid 'pin' parameter: %s", err)
	}

	account := &entities.Account{
		ID:      uuid.NewString(),
		Owner:   owner.Value.UserName,
		Number:  p.Number,
		Balance: p.Deposit,
		PinHash: pinHash,
	}

	return s.accountRepo.Create(ctx, account)
}

// CloseAccount removes an account. Administrative operation, not part
// of the transactional flow.
func (s *AccountService) CloseAccount(ctx context.Context, number entities.AccountNumber) result.Result[entities.Account] {
	unlock := s.locks.Lock(number)
	defer unlock()

	account := s.accountRepo.GetByNumber(ctx, number)
	if account.Failed() {
		return account
	}

	return s.accountRepo.Delete(ctx, &account.Value)
}

func (s *AccountService) GetAccount(ctx context.Context, number entities.AccountNumber) result.Result[entities.Account] {
	return s.accountRepo.GetByNumber(ctx, number)
}

func (s *AccountService) GetAccounts(ctx context.Context, owner string) result.Result[[]entities.Account] {
	return s.accountRepo.GetAllByOwner(ctx, owner)
}

// Withdraw debits the account with the given internal id.
//
// Preconditions are checked in order, short-circuiting on the first
// failure: non-empty key, positive amount, account exists, pin
// matches, sufficient balance. Nothing is written unless all pass.
func (s *AccountService) Withdraw(ctx context.Context, p *params.Withdraw) result.Result[entities.Account] {
	if strings.TrimSpace(p.AccountID) == "" {
		return result.InvalidDataf[entities.Account]("invalid or missing 'accountId' parameter")
	}
	if strings.TrimSpace(p.Pin) == "" {
		return result.InvalidDataf[entities.Account]("invalid or missing 'pin' parameter")
	}
	if !p.Amount.IsPositive() {
		return result.InvalidDataf[entities.Account](
			"invalid or missing 'amount' parameter: amount must be greater than 0")
	}

	// First read resolves the account number the lock is keyed by;
	// the state used for the mutation is re-read under the lock.
	resolved := s.accountRepo.GetByID(ctx, p.AccountID)
	if resolved.Failed() {
		return result.NotFoundf[entities.Account](
			"unable to withdraw %s from account %s: account does not exist", p.Amount, p.AccountID)
	}

	unlock := s.locks.Lock(resolved.Value.Number)
	defer unlock()

	account := s.accountRepo.GetByID(ctx, p.AccountID)
	if account.Failed() {
		return result.NotFoundf[entities.Account](
			"unable to withdraw %s from account %s: account does not exist", p.Amount, p.AccountID)
	}

	return s.withdraw(ctx, &account.Value, p.Pin, p.Amount)
}

// WithdrawFromNumber debits the account with the given number and
// returns the resulting balance.
func (s *AccountService) WithdrawFromNumber(
	ctx context.Context,
	number entities.AccountNumber,
	pin string,
	amount decimal.Decimal,
) result.Result[decimal.Decimal] {
	if strings.TrimSpace(pin) == "" {
		return result.InvalidDataf[decimal.Decimal]("invalid or missing 'pin' parameter")
	}
	if !amount.IsPositive() {
		return result.InvalidDataf[decimal.Decimal](
			"invalid or missing 'amount' parameter: amount must be greater than 0")
	}

	unlock := s.locks.Lock(number)
	defer unlock()

	res := s.withdrawFromNumber(ctx, number, pin, amount)
	if res.Failed() {
		return result.Fail[decimal.Decimal](res.Kind, "%s", res.Message)
	}

	return result.OK(res.Value.Balance)
}

// withdrawFromNumber loads by number and debits. Callers must hold the
// account lock and must have validated pin and amount.
func (s *AccountService) withdrawFromNumber(
	ctx context.Context,
	number entities.AccountNumber,
	pin string,
	amount decimal.Decimal,
) result.Result[entities.Account] {
	account := s.accountRepo.GetByNumber(ctx, number)
	if account.Failed() {
		return result.NotFoundf[entities.Account](
			"unable to withdraw %s from account %d: account does not exist", amount, number)
	}

	return s.withdraw(ctx, &account.Value, pin, amount)
}

// withdraw applies the debit to an already loaded account. The balance
// check happens before any write, so a rejected withdrawal leaves the
// stored record untouched.
func (s *AccountService) withdraw(
	ctx context.Context,
	account *entities.Account,
	pin string,
	amount decimal.Decimal,
) result.Result[entities.Account] {
	if !account.VerifyPin(pin) {
		return result.InvalidDataf[entities.Account]("incorrect pin")
	}

	if account.Balance.LessThan(amount) {
		return result.NotFoundf[entities.Account](
			"unable to withdraw %s from account %d: not enough balance, account balance %s",
			amount, account.Number, account.Balance)
	}

	account.Balance = account.Balance.Sub(amount)

	return s.accountRepo.Update(ctx, account)
}

// Deposit credits the account with the given number. When first and
// last name are supplied they must match the user owning the account.
func (s *AccountService) Deposit(ctx context.Context, p *params.Deposit) result.Result[entities.Account] {
	if !p.Amount.IsPositive() {
		return result.InvalidDataf[entities.Account](
			"invalid or missing 'amount' parameter: amount must be greater than 0")
	}

	unlock := s.locks.Lock(p.Number)
	defer unlock()

	account := s.accountRepo.GetByNumber(ctx, p.Number)
	if account.Failed() {
		return result.Fail[entities.Account](account.Kind,
			"unable to deposit %s to account %d: %s", p.Amount, p.Number, account.Message)
	}

	if p.FirstName != "" || p.LastName != "" {
		if verify := s.verifyOwner(ctx, &account.Value, p.FirstName, p.LastName); verify.Failed() {
			return result.Fail[entities.Account](verify.Kind, "%s", verify.Message)
		}
	}

	return s.deposit(ctx, &account.Value, p.Amount)
}

// DepositToID credits the account with the given internal id after
// verifying that number matches the account's own number.
func (s *AccountService) DepositToID(
	ctx context.Context,
	id string,
	number entities.AccountNumber,
	amount decimal.Decimal,
) result.Result[entities.Account] {
	if strings.TrimSpace(id) == "" {
		return result.InvalidDataf[entities.Account]("invalid or missing 'accountId' parameter")
	}
	if !amount.IsPositive() {
		return result.InvalidDataf[entities.Account](
			"invalid or missing 'amount' parameter: amount must be greater than 0")
	}

	resolved := s.accountRepo.GetByID(ctx, id)
	if resolved.Failed() {
		return result.NotFoundf[entities.Account](
			"unable to deposit %s into account %s: account does not exist", amount, id)
	}

	unlock := s.locks.Lock(resolved.Value.Number)
	defer unlock()

	account := s.accountRepo.GetByID(ctx, id)
	if account.Failed() {
		return result.NotFoundf[entities.Account](
			"unable to deposit %s into account %s: account does not exist", amount, id)
	}

	if account.Value.Number != number {
		return result.InvalidDataf[entities.Account](
			"unable to deposit %s into account %s: invalid account number", amount, id)
	}

	return s.deposit(ctx, &account.Value, amount)
}

// deposit applies the credit to an already loaded account.
func (s *AccountService) deposit(
	ctx context.Context,
	account *entities.Account,
	amount decimal.Decimal,
) result.Result[entities.Account] {
	account.Balance = account.Balance.Add(amount)

	return s.accountRepo.Update(ctx, account)
}

// verifyOwner checks that the supplied names match the user owning the
// account. Used wherever a name-checked deposit or transfer occurs.
func (s *AccountService) verifyOwner(
	ctx context.Context,
	account *entities.Account,
	firstName, lastName string,
) result.Result[entities.Account] {
	owner := s.userRepo.GetByUserName(ctx, account.Owner)
	if owner.Failed() {
		return result.Fail[entities.Account](owner.Kind,
			"unable to verify the name on account %d: %s", account.Number, owner.Message)
	}

	if owner.Value.FirstName != firstName || owner.Value.LastName != lastName {
		return result.NotFoundf[entities.Account](
			"the given names do not match the name on the account")
	}

	return result.OK(*account)
}

// Transfer moves amount from the source account to the destination.
//
// The destination is validated before anything is withdrawn. If the
// deposit half still fails, the already withdrawn amount is returned
// to the source before the failure is reported, so the transfer never
// stays half-applied. On sql backends both halves additionally share
// one storage transaction.
func (s *AccountService) Transfer(ctx context.Context, p *params.Transfer) result.Result[decimal.Decimal] {
	if strings.TrimSpace(p.Pin) == "" {
		return result.InvalidDataf[decimal.Decimal]("invalid or missing 'pin' parameter")
	}
	if !p.Amount.IsPositive() {
		return result.InvalidDataf[decimal.Decimal](
			"invalid or missing 'amount' parameter: amount must be greater than 0")
	}
	if p.Source == p.Destination {
		return result.InvalidDataf[decimal.Decimal](
			"unable to transfer %s from account %d to account %d: same account",
			p.Amount, p.Source, p.Destination)
	}

	unlock := s.locks.Lock(p.Source, p.Destination)
	defer unlock()

	// The destination must be valid before the withdrawal applies.
	destination := s.accountRepo.GetByNumber(ctx, p.Destination)
	if destination.Failed() {
		return result.InvalidDataf[decimal.Decimal](
			"unable to transfer %s from account %d to account %d: destination account does not exist",
			p.Amount, p.Source, p.Destination)
	}

	if p.DestFirstName != "" || p.DestLastName != "" {
		if verify := s.verifyOwner(ctx, &destination.Value, p.DestFirstName, p.DestLastName); verify.Failed() {
			return result.InvalidDataf[decimal.Decimal](
				"unable to transfer %s from account %d to account %d: %s",
				p.Amount, p.Source, p.Destination, verify.Message)
		}
	}

	var out result.Result[decimal.Decimal]

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		withdrawn := s.withdrawFromNumber(ctx, p.Source, p.Pin, p.Amount)
		if withdrawn.Failed() {
			out = result.Fail[decimal.Decimal](withdrawn.Kind, "%s", withdrawn.Message)
			return nil
		}

		deposited := s.deposit(ctx, &destination.Value, p.Amount)
		if deposited.Failed() {
			// Return the withdrawn amount to the source before
			// reporting failure.
			refund := withdrawn.Value
			refund.Balance = refund.Balance.Add(p.Amount)

			if compensation := s.accountRepo.Update(ctx, &refund); compensation.Failed() {
				out = result.DataStoreErrorf[decimal.Decimal](
					"unable to transfer %s from account %d to account %d: %s; compensation failed: %s",
					p.Amount, p.Source, p.Destination, deposited.Message, compensation.Message)
				// Roll the storage transaction back where one exists.
				return errors.New(compensation.Message)
			}

			out = result.InvalidDataf[decimal.Decimal](
				"unable to transfer %s from account %d to account %d: %s",
				p.Amount, p.Source, p.Destination, deposited.Message)
			return nil
		}

		out = result.OK(withdrawn.Value.Balance)
		return nil
	})
	if err != nil {
		s.logger.Errorf("transfer %s from %d to %d: %s", p.Amount, p.Source, p.Destination, err)
		if out.Kind == "" {
			out = result.DataStoreErrorf[decimal.Decimal](
				"unable to transfer %s from account %d to account %d: %s",
				p.Amount, p.Source, p.Destination, err)
		}
	}

	return out
}
