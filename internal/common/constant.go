// Package common contains shared constants and sentinel errors used across
// casekeeper components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "

	// SuperAdminRole is the role name that can never be granted or revoked
	// from the client.
	SuperAdminRole = "ROLE_SUPER_ADMIN"
)
