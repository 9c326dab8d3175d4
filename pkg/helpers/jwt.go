package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenSigner signs the session id carried in the session cookie so
// that a tampered or forged cookie is rejected before the store is queried.
type SessionTokenSigner struct {
	Secret []byte
}

func NewSessionTokenSigner(secret string) *SessionTokenSigner {
	return &SessionTokenSigner{Secret: []byte(secret)}
}

type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Sign returns a token for sid that stops validating at exp.
func (m *SessionTokenSigner) Sign(sid string, exp time.Time) (string, error) {
	claims := &SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

// Parse validates tokenStr and returns the session id it carries.
func (m *SessionTokenSigner) Parse(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.SessionID == "" {
		return "", errors.New("invalid token")
	}
	return claims.SessionID, nil
}
