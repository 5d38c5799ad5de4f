package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"shopswift/internal/domain"
)

// Credentials of the two built-in accounts.
const (
	AdminEmail    = "admin@shopswift.com"
	AdminPassword = "admin123"
	UserEmail     = "user@shopswift.com"
	UserPassword  = "user123"
)

type account struct {
	user         domain.User
	passwordHash []byte
}

// Accounts is a fixed set of email/password pairs. Only bcrypt hashes are kept.
type Accounts struct {
	list []account
}

// NewAccounts hashes each password with cost and returns the set.
func NewAccounts(cost int, entries map[domain.User]string) (*Accounts, error) {
	a := &Accounts{}
	for user, password := range entries {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", user.Email, err)
		}
		a.list = append(a.list, account{user: user, passwordHash: hash})
	}
	return a, nil
}

var (
	builtinOnce sync.Once
	builtin     *Accounts
)

// BuiltinAccounts returns the admin and standard demo accounts. Hashing runs
// once per process.
func BuiltinAccounts() *Accounts {
	builtinOnce.Do(func() {
		a, err := NewAccounts(bcrypt.DefaultCost, map[domain.User]string{
			{ID: "1", Email: AdminEmail, IsAdmin: true}: AdminPassword,
			{ID: "2", Email: UserEmail, IsAdmin: false}: UserPassword,
		})
		if err != nil {
			panic(err)
		}
		builtin = a
	})
	return builtin
}

// Authenticate returns the user whose email matches exactly and whose
// password hash matches password.
func (a *Accounts) Authenticate(email, password string) (domain.User, bool) {
	for _, acc := range a.list {
		if acc.user.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
			return domain.User{}, false
		}
		return acc.user, true
	}
	return domain.User{}, false
}
