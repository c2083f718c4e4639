package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/segmentio/ksuid"
)

// ScopeMe grants read/write access to the caller's own profile.
const ScopeMe = "me"

// ErrInvalidToken is returned for tokens that are malformed, carry a bad
// signature or have expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the contents of an access token.
type Claims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and decodes HS256 access tokens with a server-held secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of i that stamps and validates tokens against now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	return &TokenIssuer{secret: i.secret, now: now}
}

// Issue produces a signed token for subjectID valid until expireAt.
func (i *TokenIssuer) Issue(subjectID int64, expireAt time.Time, scopes []string) (string, error) {
	if scopes == nil {
		scopes = []string{}
	}
	claims := Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ksuid.New().String(),
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(i.now()),
			ExpiresAt: jwt.NewNumericDate(expireAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Decode verifies the token and returns its claims. Every failure wraps
// ErrInvalidToken. A missing subject is not an error here.
func (i *TokenIssuer) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return i.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
