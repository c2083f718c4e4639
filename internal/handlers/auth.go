package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/commentree/apiserver/internal/services"
	"github.com/commentree/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Accounts is the account use-case surface the HTTP layer depends on.
type Accounts interface {
	Register(ctx context.Context, username, email, password string) (types.Account, error)
	Login(ctx context.Context, password, username, email string) (services.LoginResult, error)
	CurrentUser(ctx context.Context, token string) (types.Account, error)
}

type contextKey string

const contextAccountKey contextKey = "account"

// AuthHandler provides registration, login and profile endpoints.
type AuthHandler struct {
	accounts Accounts
	logger   *zap.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(accounts Accounts, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{accounts: accounts, logger: logger}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, accounts Accounts, logger *zap.Logger) {
	handler := NewAuthHandler(accounts, logger)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(RequireAuth(accounts, logger)).Get("/user", handler.Me)
}

// RequireAuth resolves the bearer token to an account and stores it in the
// request context. A missing header is treated as an empty token.
func RequireAuth(accounts Accounts, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, err := accounts.CurrentUser(r.Context(), bearerToken(r))
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeServiceError(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), contextAccountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the account stored by RequireAuth.
func AccountFromContext(ctx context.Context) (types.Account, bool) {
	account, ok := ctx.Value(contextAccountKey).(types.Account)
	return account, ok
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newAccountResponse(account types.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		CreatedAt: account.CreatedAt.UTC(),
	}
}

// Register creates an account with a password credential.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs fieldErrors
	if req.Username == "" {
		errs.missing("username")
	} else {
		errs.username(req.Username)
	}
	if req.Email == "" {
		errs.missing("email")
	} else {
		errs.email(req.Email)
	}
	if req.Password == "" {
		errs.missing("password")
	} else {
		before := len(errs)
		errs.length("password", req.Password, passwordMinLen, passwordMaxLen)
		// A well-sized password with a missing character class is reported
		// ahead of any other field error.
		if len(errs) == before && !passwordHasAllClasses(req.Password) {
			writeServiceError(w, r, h.logger, services.ErrPasswordInvalidFormat)
			return
		}
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("account registered", zap.Int64("account_id", account.ID))
	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

// Login verifies a password and returns an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs fieldErrors
	if req.Username != "" {
		errs.username(req.Username)
	}
	if req.Email != "" {
		errs.email(req.Email)
	}
	if req.Password == "" {
		errs.missing("password")
	} else {
		errs.length("password", req.Password, passwordMinLen, passwordMaxLen)
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Password, req.Username, req.Email)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Me returns the current authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, h.logger, services.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func bearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
