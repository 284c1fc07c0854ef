package auth_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/avaldez/ecommerce-api/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func newIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer_MissingSecret(t *testing.T) {
	_, err := auth.NewTokenIssuer("", time.Hour)
	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := newIssuer(t)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "alice", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Admin", claims.Role)
	assert.False(t, claims.IssuedAt.IsZero())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := newIssuer(t)

	// Sign an already-expired token with the same secret; the signature is
	// valid but the expiry is in the past.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       uuid.New().String(),
		"username": "alice",
		"role":     "User",
		"iat":      time.Now().Add(-2 * time.Hour).Unix(),
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = issuer.Verify(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_RejectsTamperedPayload(t *testing.T) {
	issuer := newIssuer(t)

	token, err := issuer.Issue(uuid.New(), "mallory", "User")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	// Promote the role claim without re-signing
	forged := strings.Replace(string(payload), `"User"`, `"Admin"`, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = issuer.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	other, err := auth.NewTokenIssuer("a-different-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(uuid.New(), "alice", "User")
	require.NoError(t, err)

	_, err = newIssuer(t).Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_RejectsMalformed(t *testing.T) {
	issuer := newIssuer(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "two parts", token: "abc.def"},
		{name: "missing claims", token: mustSign(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})},
		{name: "missing expiry", token: mustSign(t, jwt.MapClaims{"id": uuid.New().String(), "username": "a", "role": "User"})},
		{name: "non-uuid id", token: mustSign(t, jwt.MapClaims{"id": "42", "username": "a", "role": "User", "exp": time.Now().Add(time.Hour).Unix()})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestTokenIssuer_RejectsUnsignedAlg(t *testing.T) {
	issuer := newIssuer(t)

	// alg=none token, no signature
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":       uuid.New().String(),
		"username": "alice",
		"role":     "Admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Verify(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func mustSign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
