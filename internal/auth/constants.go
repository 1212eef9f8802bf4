package auth

// AuthCookieName is the httpOnly cookie carrying the session token for
// browser clients. Shared between HTTP middleware and the websocket upgrade.
const AuthCookieName = "jp_token"
