package common

// AuthorizationHeaderName is the header key that carries the bearer token on
// inbound requests. Lookup is case-insensitive on the consuming side.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the exact scheme prefix required before the token value.
const BearerPrefix = "Bearer "
