package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer
// access token on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the Authorization header value.
const BearerPrefix = "Bearer "
