package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/commentree/apiserver/internal/db"
	"github.com/commentree/apiserver/types"
	"github.com/jmoiron/sqlx"
)

// AccountRepository handles persistence for accounts and their credentials.
type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const selectAccount = `
		SELECT id, username, email, created_at, updated_at
		FROM accounts`

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (types.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE id = $1`, id)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (types.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE username = $1`, username)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	return r.getOne(ctx, selectAccount+` WHERE email = $1`, email)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg any) (types.Account, error) {
	var account types.Account
	if err := sqlx.GetContext(ctx, r.db, &account, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Account{}, ErrNotFound
		}
		return types.Account{}, err
	}
	return account, nil
}

// CreateWithCredential inserts the account and its credential in a single
// transaction. Unique violations come back as ErrUsernameTaken or
// ErrEmailTaken.
func (r *AccountRepository) CreateWithCredential(ctx context.Context, account types.Account, credential types.Credential) (types.Account, error) {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	err := db.WithTx(ctx, r.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const insertAccount = `
		INSERT INTO accounts (username, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
		if err := tx.QueryRowxContext(
			ctx,
			insertAccount,
			account.Username,
			account.Email,
			account.CreatedAt,
			account.UpdatedAt,
		).Scan(&account.ID); err != nil {
			return translateUniqueViolation(err)
		}

		const insertCredential = `
		INSERT INTO credentials (account_id, auth_type, hashed_secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
		_, err := tx.ExecContext(
			ctx,
			insertCredential,
			account.ID,
			credential.AuthType,
			credential.HashedSecret,
			now,
			now,
		)
		return err
	})
	if err != nil {
		return types.Account{}, err
	}
	return account, nil
}

func (r *AccountRepository) GetCredential(ctx context.Context, accountID int64, authType string) (types.Credential, error) {
	const query = `
		SELECT id, account_id, auth_type, hashed_secret, created_at, updated_at
		FROM credentials
		WHERE account_id = $1 AND auth_type = $2`
	var credential types.Credential
	if err := sqlx.GetContext(ctx, r.db, &credential, query, accountID, authType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Credential{}, ErrNotFound
		}
		return types.Credential{}, err
	}
	return credential, nil
}

// Update is not supported: accounts are immutable once registered.
func (r *AccountRepository) Update(ctx context.Context, account types.Account) (types.Account, error) {
	return types.Account{}, ErrUnsupported
}

// Delete is not supported: accounts are never removed.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return ErrUnsupported
}
