package middleware

// HTTP header names and values
const (
	// HeaderWWWAuthenticate asks clients for Basic credentials on a 401
	HeaderWWWAuthenticate = "WWW-Authenticate"

	// BasicRealm is the realm advertised in the challenge
	BasicRealm = `Basic realm="coffee-pos", charset="UTF-8"`
)

// Response messages
const (
	ErrMsgInvalidCredentials = "Invalid credentials"
	ErrMsgAuthUnavailable    = "Authentication is temporarily unavailable"
)

// Log messages
const (
	// LogMsgAuthFailed is logged when Basic credentials do not match a user
	LogMsgAuthFailed = "Authentication failed"

	// LogMsgAuthError is logged when the user store could not be consulted
	LogMsgAuthError = "Authentication error"
)
