package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errBadToken = errors.New("session: invalid cookie token")

// tokenCodec signs session ids into HS256 tokens. The id travels as the jti
// claim.
type tokenCodec struct {
	secret []byte
}

func (c tokenCodec) sign(id string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign cookie: %w", err)
	}
	return token, nil
}

func (c tokenCodec) parse(raw string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid || claims.ID == "" || claims.ExpiresAt == nil {
		return "", errBadToken
	}
	return claims.ID, nil
}
