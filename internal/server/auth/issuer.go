// Package auth implements minting and verification of the signed access
// and refresh credentials. The Issuer is stateless apart from its
// construction-time configuration and performs no I/O.
package auth

import (
	"errors"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the claim set embedded in both credential kinds. Subject is the
// member ID; Role is carried for downstream authorization checks.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Issuer mints and verifies HS256-signed tokens. The signing secret and the
// two lifetimes are fixed at construction and never mutated.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer constructs an Issuer from the process-wide secret and the
// configured access/refresh lifetimes.
func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// MintAccess returns a short-lived access credential for the member.
func (i *Issuer) MintAccess(memberID, role string) (string, error) {
	return i.mint(memberID, role, i.accessTTL)
}

// MintRefresh returns a long-lived refresh credential for the member.
func (i *Issuer) MintRefresh(memberID, role string) (string, error) {
	return i.mint(memberID, role, i.refreshTTL)
}

// RefreshExpiry returns now + refresh TTL. Callers persisting a refresh
// record use this instant so the stored expiry matches the one embedded in
// the credential minted alongside it.
func (i *Issuer) RefreshExpiry() time.Time {
	return time.Now().Add(i.refreshTTL)
}

// RefreshTTL exposes the configured refresh lifetime.
func (i *Issuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

func (i *Issuer) mint(memberID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// A unique ID per token: the refresh token string is the
			// store's primary key, and two mints within the same second
			// must not collide.
			ID: uuid.NewString(),
		},
		Role: role,
	})
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string and returns its claims.
// Expired tokens yield common.ErrTokenExpired; any other malformed,
// tampered, or mis-signed token yields common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
