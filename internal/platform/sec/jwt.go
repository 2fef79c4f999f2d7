// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token signing.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. Domain services receive a [Signer] by constructor and never
// touch key material directly.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Claims

// Token types carried in the "typ" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned for any token that fails verification.
// The underlying jwt error is wrapped for logging.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside an access or refresh token.
//
// Custom application claims are abbreviated to keep the JWT payload small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm,omitempty"`
	Type     string `json:"typ"`
}

// # Signer

// Signer signs and verifies HS256 tokens with a single shared secret.
//
// Access and refresh tokens use two distinct Signers so a token of one kind
// can never verify as the other.
type Signer struct {
	secret    []byte
	issuer    string
	tokenType string
	now       func() time.Time
}

// NewSigner creates a Signer for the given token type.
func NewSigner(secret, issuer, tokenType string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: empty signing secret for %s tokens", tokenType)
	}
	return &Signer{
		secret:    []byte(secret),
		issuer:    issuer,
		tokenType: tokenType,
		now:       time.Now,
	}, nil
}

// WithClock returns a copy of the signer that reads time from now.
func (signer *Signer) WithClock(now func() time.Time) *Signer {
	clone := *signer
	clone.now = now
	return &clone
}

// Sign stamps the registered claims (issuer, subject, iat, exp) and signs.
func (signer *Signer) Sign(claims AuthClaims, timeToLive time.Duration) (string, time.Time, error) {
	issuedAt := signer.now()
	expiresAt := issuedAt.Add(timeToLive)

	claims.Issuer = signer.issuer
	claims.Subject = claims.UserID
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	claims.Type = signer.tokenType

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signer.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm, issuer, expiry and token type.
func (signer *Signer) Verify(tokenString string) (*AuthClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return signer.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signer.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(signer.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Type != signer.tokenType || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
