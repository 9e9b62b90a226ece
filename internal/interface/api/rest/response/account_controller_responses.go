package response

import (
	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// GetAccount is the external representation of an account. The pin
// hash never leaves the service.
type GetAccount struct {
	ID      string          `json:"id"`
	Owner   string          `json:"owner"`
	Number  int             `json:"number"`
	Balance decimal.Decimal `json:"balance"`
}

func NewGetAccount(e *entities.Account) *GetAccount {
	return &GetAccount{
		ID:      e.ID,
		Owner:   e.Owner,
		Number:  int(e.Number),
		Balance: e.Balance,
	}
}

// Transfer carries the source balance after a successful transfer.
type Transfer struct {
	Balance decimal.Decimal `json:"balance"`
}

func NewTransfer(balance decimal.Decimal) Transfer {
	return Transfer{Balance: balance}
}
