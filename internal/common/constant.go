package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const AccessTokenHeaderName = "access_token"

// TokenCookieName is the HTTP cookie holding the session token.
const TokenCookieName = "token"
