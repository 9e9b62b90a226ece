package user

import (
	"context"
	"time"
)

// BankUser represents a registered customer owning accounts.
// Fields aligned for the GC optimal scanning.
type BankUser struct {
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	ID           string    `db:"id" json:"id"`
	UserName     string    `db:"user_name" json:"user_name"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	PasswordHash string    `db:"password_hash" json:"password_hash"`
}

// key is an unexported type for keys defined in this package.
// This prevents collisions with keys defined in other packages.
type key int

// userKey is the key for user.BankUser values in Contexts. It is
// unexported; clients use user.NewContext and user.FromContext
// instead of using this key directly.
var userKey key

// NewContext returns a new Context that carries value u.
func NewContext(ctx context.Context, u *BankUser) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// FromContext returns the BankUser value stored in ctx, if any.
func FromContext(ctx context.Context) (*BankUser, bool) {
	u, ok := ctx.Value(userKey).(*BankUser)
	return u, ok
}
