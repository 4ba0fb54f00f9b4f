package common

// Header names shared by the REST server and the CLI client.
const (
	// AuthorizationHeaderName carries the bearer token on protected requests
	// and on successful login responses.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is the scheme prefix expected in the Authorization header.
	BearerPrefix = "Bearer "

	// UserIDHeaderName carries the public user id on successful login responses.
	UserIDHeaderName = "UserID"
)
