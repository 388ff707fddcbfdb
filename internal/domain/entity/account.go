// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// Account is the persisted identity of a citizen or staff member.
// Email and Username are unique among live accounts, compared case-insensitively.
type Account struct {
	ID                  int64      // Store-assigned identifier, immutable once created.
	Email               string     // Normalized login email.
	Username            string     // Normalized public handle.
	FirstName           string     // Display only.
	LastName            string     // Display only.
	Role                Role       // Role tag carried in issued tokens.
	PasswordHash        string     // bcrypt digest. Empty unless the store was asked for it.
	FailedLoginAttempts int        // Consecutive failed logins since the last success.
	LastLoginAt         *time.Time // Time of the last successful login, nil if never.
	CreatedAt           time.Time  // Set by the store on insert.
	DeletedAt           *time.Time // Soft-deletion marker; a deleted account is invisible to lookups.
}

// IsLive reports whether the account has not been soft-deleted.
func (a *Account) IsLive() bool {
	return a.DeletedAt == nil
}

// View returns the public projection of the account. It never carries the password hash.
func (a *Account) View() *AccountView {
	return &AccountView{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

// AccountView is the public-facing shape of an Account.
type AccountView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Claims is the identity asserted by an issued bearer token.
type Claims struct {
	AccountID int64
	Email     string
	Role      Role
}

// NormalizeKey trims surrounding whitespace and lower-cases s.
// It is applied to every value used as a uniqueness key (email, username).
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
