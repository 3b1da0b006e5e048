package auth

import (
	"econ-lab/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "econ-lab"

// Claims is the payload of a REST token.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Signer issues and checks REST tokens with the key loaded from
// OTREE_REST_KEY.
type Signer struct {
	key []byte
	now func() time.Time
}

func NewSigner(key string) (*Signer, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: REST signing key", errors.ErrMissingSecret)
	}
	return &Signer{key: []byte(key), now: time.Now}, nil
}

// GenerateToken creates a signed HS256 token valid for ttl.
func (s *Signer) GenerateToken(username string, roles []string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ValidateToken checks signature, algorithm and expiry.
func (s *Signer) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
