package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/commentree/apiserver/internal/auth"
	"github.com/commentree/apiserver/internal/store"
	"github.com/commentree/apiserver/types"
	"go.uber.org/zap"
)

// TokenTypeBearer is the token_type returned by Login.
const TokenTypeBearer = "Bearer"

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (types.Account, error)
	GetByUsername(ctx context.Context, username string) (types.Account, error)
	GetByEmail(ctx context.Context, email string) (types.Account, error)
	CreateWithCredential(ctx context.Context, account types.Account, credential types.Credential) (types.Account, error)
	GetCredential(ctx context.Context, accountID int64, authType string) (types.Credential, error)
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	UserID      int64     `json:"user_id"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpireAt    time.Time `json:"expire_at"`
}

// AccountService encapsulates registration, login and token resolution.
type AccountService struct {
	repo     AccountRepository
	tokens   *auth.TokenIssuer
	tokenTTL time.Duration
	events   eventEmitter
	now      func() time.Time
}

// AccountServiceOption customizes an AccountService.
type AccountServiceOption func(*AccountService)

// WithClock replaces the clock used to issue and validate tokens.
func WithClock(now func() time.Time) AccountServiceOption {
	return func(s *AccountService) {
		s.now = now
		if s.tokens != nil {
			s.tokens = s.tokens.WithClock(now)
		}
	}
}

// WithAccountEvents publishes account.registered after each registration.
func WithAccountEvents(publisher EventPublisher, logger *zap.Logger) AccountServiceOption {
	return func(s *AccountService) {
		s.events = newEventEmitter(publisher, logger)
	}
}

func NewAccountService(repo AccountRepository, tokens *auth.TokenIssuer, tokenTTL time.Duration, opts ...AccountServiceOption) *AccountService {
	s := &AccountService{
		repo:     repo,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		events:   newEventEmitter(nil, nil),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account with a password credential. The username is
// checked before the email.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (types.Account, error) {
	if err := s.ensureAbsent(ctx, s.repo.GetByUsername, username, ErrUsernameAlreadyUsed); err != nil {
		return types.Account{}, err
	}
	if err := s.ensureAbsent(ctx, s.repo.GetByEmail, email, ErrEmailAlreadyUsed); err != nil {
		return types.Account{}, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return types.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repo.CreateWithCredential(ctx,
		types.Account{Username: username, Email: email},
		types.Credential{AuthType: types.AuthTypePassword, HashedSecret: hashed},
	)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return types.Account{}, ErrUsernameAlreadyUsed
	case errors.Is(err, store.ErrEmailTaken):
		return types.Account{}, ErrEmailAlreadyUsed
	case err != nil:
		return types.Account{}, fmt.Errorf("create account: %w", err)
	}

	s.events.emit(ctx, ChannelAccounts, EventAccountRegistered, AccountRegistered{
		AccountID:  account.ID,
		Username:   account.Username,
		OccurredAt: account.CreatedAt,
	})
	return account, nil
}

func (s *AccountService) ensureAbsent(
	ctx context.Context,
	lookup func(context.Context, string) (types.Account, error),
	value string,
	used *Error,
) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return used
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Login authenticates by username, or by email when no username is given,
// and issues an access token with the "me" scope.
func (s *AccountService) Login(ctx context.Context, password, username, email string) (LoginResult, error) {
	var (
		account types.Account
		err     error
		lookup  string
	)
	switch {
	case username != "":
		lookup = "username=" + username
		account, err = s.repo.GetByUsername(ctx, username)
	case email != "":
		lookup = "email=" + email
		account, err = s.repo.GetByEmail(ctx, email)
	default:
		return LoginResult{}, ErrUsernameEmailCannotBothBeNone
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrObjectNotFound.WithMessage("Account not found: " + lookup)
		}
		return LoginResult{}, err
	}

	credential, err := s.repo.GetCredential(ctx, account.ID, types.AuthTypePassword)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrPasswordIncorrect
		}
		return LoginResult{}, err
	}

	ok, err := auth.VerifyPassword(credential.HashedSecret, password)
	if err != nil {
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return LoginResult{}, ErrPasswordIncorrect
	}

	expireAt := s.now().Add(s.tokenTTL).UTC().Truncate(time.Second)
	token, err := s.tokens.Issue(account.ID, expireAt, []string{auth.ScopeMe})
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{
		UserID:      account.ID,
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpireAt:    expireAt,
	}, nil
}

// FindByUsername returns the account with username or ErrObjectNotFound.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (types.Account, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return types.Account{}, ErrObjectNotFound.WithMessage("Account not found: username=" + username)
	}
	return account, err
}

// CurrentUser resolves a bearer token to its account. Every token problem
// yields ErrUnauthenticated; repository failures are returned unchanged.
func (s *AccountService) CurrentUser(ctx context.Context, token string) (types.Account, error) {
	if strings.TrimSpace(token) == "" {
		return types.Account{}, ErrUnauthenticated
	}

	claims, err := s.tokens.Decode(token)
	if err != nil {
		return types.Account{}, ErrUnauthenticated
	}

	id, err := strconv.ParseInt(strings.TrimSpace(claims.Subject), 10, 64)
	if err != nil || id < 1 {
		return types.Account{}, ErrUnauthenticated
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Account{}, ErrUnauthenticated
		}
		return types.Account{}, err
	}
	return account, nil
}
