package types

import "time"

// AuthTypePassword tags a credential whose secret is a hashed password.
const AuthTypePassword = "pwd"

// Account represents a registered user of the comment system.
type Account struct {
	// ID is the unique identifier of the account.
	ID int64 `json:"id" db:"id"`

	// Username is the unique login name, 5 to 20 alphanumeric characters.
	Username string `json:"username" db:"username"`

	// Email is the unique email address of the account.
	Email string `json:"email" db:"email"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent change to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Credential is a verifiable secret bound to one account.
// An account owns at most one credential per AuthType.
type Credential struct {
	// ID is the unique identifier of the credential.
	ID int64 `json:"id" db:"id"`

	// AccountID references the owning account.
	AccountID int64 `json:"account_id" db:"account_id"`

	// AuthType identifies the kind of secret, currently only AuthTypePassword.
	AuthType string `json:"auth_type" db:"auth_type"`

	// HashedSecret is the encoded password hash.
	// This field is never exposed in API responses.
	HashedSecret string `json:"-" db:"hashed_secret"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
