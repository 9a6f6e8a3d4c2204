// Package token issues and verifies the signed bearer credentials used by
// the API. Verification is stateless: any process holding the shared
// secret can validate a token without a store round trip. The embedded
// role is a snapshot taken at issuance; a role change only takes effect
// after the user re-authenticates.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookhaven/catalog-system/internal/core/domain"
)

const DefaultTTL = time.Hour

var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenInvalid = errors.New("token signature invalid")

// Claims is the identity carried inside a verified token.
type Claims struct {
	Subject string      `json:"sub"`
	Role    domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs identity tokens with a symmetric key held for the process
// lifetime. The key is injected at construction and never logged.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed HS256 token embedding the user's identity and
// role at issuance time.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Subject: user.Username,
		Role:    user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verifier validates tokens produced by Issuer.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token string. It distinguishes expiry,
// malformed payloads, and bad signatures so the transport layer can log
// them apart; all three surface as 401 to the caller.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !t.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
