package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/autocompany-server/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	method    *jwt.SigningMethodHMAC
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a token manager signing with the named HMAC algorithm (HS256, HS384 or HS512).
func NewJWT(secretKey, algorithm string, ttl time.Duration) (*JWT, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing method %q", algorithm)
	}
	if secretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &JWT{
		secretKey: []byte(secretKey),
		method:    method,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// Issue creates a token with the subject, issued-at and expiry claims.
func (j *JWT) Issue(subject string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(j.method, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates signature, algorithm and expiry, and returns the subject.
func (j *JWT) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("token is invalid")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}
