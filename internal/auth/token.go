package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the token lifetime used when the configuration does not
// override it.
const DefaultTokenTTL = 2 * time.Hour

var (
	// ErrMissingSecret means the signing secret was absent or blank. It is a
	// startup-time failure; a server must not come up without one.
	ErrMissingSecret = errors.New("token signing secret is required")

	// ErrInvalidToken covers every verification failure: bad signature,
	// expired, malformed. Callers get one outcome; the wrapped detail is for
	// server-side logs only.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the verified content of a session token.
type Claims struct {
	UserID    uuid.UUID
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies HMAC-signed session tokens. The server holds
// no session state: a token is valid iff its signature checks out against the
// secret and it has not expired. Rotating the secret invalidates every
// outstanding token.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer around an immutable signing secret. ttl
// must be positive; pass DefaultTokenTTL unless configuration says otherwise.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the user's identity and role.
func (i *TokenIssuer) Issue(userID uuid.UUID, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       userID.String(),
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks the signature and expiry and returns the claims. Any failure
// comes back as ErrInvalidToken with the underlying cause wrapped in.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claimsFromMap(mapClaims)
}

func claimsFromMap(mc jwt.MapClaims) (*Claims, error) {
	idStr, ok := mc["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed id claim", ErrInvalidToken)
	}

	username, ok := mc["username"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing username claim", ErrInvalidToken)
	}

	role, ok := mc["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
