package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAndDecode(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("super-secret")
	expireAt := time.Now().Add(time.Minute).Truncate(time.Second)

	token, err := issuer.Issue(42, expireAt, []string{ScopeMe})
	require.NoError(t, err)

	claims, err := issuer.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, []string{ScopeMe}, claims.Scopes)
	require.True(t, claims.ExpiresAt.Time.Equal(expireAt))
	require.NotEmpty(t, claims.ID)
}

func TestIssueGivesUniqueTokenIDs(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("k")
	expireAt := time.Now().Add(time.Hour)
	first, err := issuer.Issue(1, expireAt, nil)
	require.NoError(t, err)
	second, err := issuer.Issue(1, expireAt, nil)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestDecodeExpired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret")
	token, err := issuer.Issue(1, time.Now().Add(-time.Minute), []string{ScopeMe})
	require.NoError(t, err)

	_, err = issuer.Decode(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenIssuer("right-secret").Issue(2, time.Now().Add(time.Hour), nil)
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong-secret").Decode(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeTamperedSignature(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret")
	token, err := issuer.Issue(3, time.Now().Add(time.Hour), nil)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = issuer.Decode(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("k")
	for _, token := range []string{"", "hella.asdsb.dddc", "not-a-jwt"} {
		_, err := issuer.Decode(token)
		require.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestDecodeRejectsNonHMAC(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("k").Decode(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRequiresExpiry(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	})
	raw, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("k").Decode(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeUsesIssuerClock(t *testing.T) {
	t.Parallel()

	past := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret").WithClock(func() time.Time { return past })
	token, err := issuer.Issue(4, past.Add(time.Hour), []string{ScopeMe})
	require.NoError(t, err)

	claims, err := issuer.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "4", claims.Subject)
	require.True(t, claims.IssuedAt.Time.Equal(past))

	_, err = NewTokenIssuer("secret").Decode(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	later := issuer.WithClock(func() time.Time { return past.Add(2 * time.Hour) })
	_, err = later.Decode(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
