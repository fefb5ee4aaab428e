package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer       = "todo-api"
	minJWTSecretBytes = 32
)

// Tokens issues and verifies the bearer tokens that identify the user
// behind a request. The user ID travels in the subject claim.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens signing with secret (HS256) and issuing tokens
// valid for ttl.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if len(secret) < minJWTSecretBytes {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretBytes)
	}
	if ttl <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for userID.
func (t *Tokens) Issue(userID int) (string, error) {
	if userID <= 0 {
		return "", errors.New("invalid user ID")
	}

	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature, issuer and expiry and returns the user ID.
func (t *Tokens) Verify(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, errors.New("token is empty")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid token subject")
	}
	return userID, nil
}
