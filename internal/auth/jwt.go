package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload the identity provider signs for each session.
type Claims struct {
	DisplayName string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates session tokens against the shared HS256 secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify parses and validates a bearer token and maps it to a User.
// The subject claim is the user id; a missing role defaults to customer.
func (v *Verifier) Verify(tokenStr string) (User, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("auth: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return User{}, ErrUnauthenticated
	}

	role := Role(claims.Role)
	if role != RoleAdmin {
		role = RoleCustomer
	}

	return User{
		ID:          claims.Subject,
		DisplayName: claims.DisplayName,
		Role:        role,
	}, nil
}

// Sign issues a token for the given user. The storefront itself never signs
// production tokens (the identity provider does); this exists for local
// development and tests.
func (v *Verifier) Sign(u User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
