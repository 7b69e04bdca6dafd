// Package common contains shared constants and sentinel errors used across
// the gateway, identity and content services.
package common

const (
	// AuthorizationHeader is the HTTP header carrying the bearer credential.
	AuthorizationHeader = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// UserIDMetadataKey is the gRPC metadata key used by the gateway to pass
	// the authenticated user id to downstream services.
	UserIDMetadataKey = "x-user-id"

	// RequestIDMetadataKey is the gRPC metadata key carrying the gateway request id.
	RequestIDMetadataKey = "x-request-id"

	// RequestIDHeader is the HTTP header echoing the request id to clients.
	RequestIDHeader = "X-Request-Id"
)
