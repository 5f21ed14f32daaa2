// Package common contains shared constants and sentinel errors used across
// Malsami components.
package common

// RefreshTokenCookieName is the cookie used to carry the refresh token
// between the browser and the token-renewal endpoint.
const RefreshTokenCookieName = "refreshToken"

// RefreshTokenCookiePath restricts the refresh cookie to the renewal
// endpoint so it is never sent with ordinary API requests.
const RefreshTokenCookiePath = "/api/auth/refresh"

// NicknameLength is the length of the randomly assigned member nickname.
const NicknameLength = 6

// DefaultMemberRole is the role granted to newly provisioned members.
const DefaultMemberRole = "ROLE_USER"
