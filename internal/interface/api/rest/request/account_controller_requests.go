package request

import "github.com/shopspring/decimal"

// OpenAccount defines parameters for OpenAccount.
type OpenAccount struct {
	Number  int             `json:"number"`
	Pin     string          `json:"pin"`
	Deposit decimal.Decimal `json:"deposit"`
}

// Withdraw defines parameters for Withdraw.
type Withdraw struct {
	Number int             `json:"number"`
	Pin    string          `json:"pin"`
	Amount decimal.Decimal `json:"amount"`
}

// Deposit defines parameters for Deposit. FirstName and LastName are
// optional; when present the deposit is name-verified.
type Deposit struct {
	Number    int             `json:"number"`
	Amount    decimal.Decimal `json:"amount"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
}

// Transfer defines parameters for Transfer. DestFirstName and
// DestLastName are optional destination identity checks.
type Transfer struct {
	Source        int             `json:"source"`
	Pin           string          `json:"pin"`
	Destination   int             `json:"destination"`
	Amount        decimal.Decimal `json:"amount"`
	DestFirstName string          `json:"dest_first_name,omitempty"`
	DestLastName  string          `json:"dest_last_name,omitempty"`
}
