package domain

// Credentials are what the login and register forms collect. The backend's
// wire field for the password is password_hash even though it carries the
// plain password.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password_hash"`
}

// AuthState is the Auth Gate's view of the session.
type AuthState string

const (
	AuthLoading         AuthState = "loading"
	AuthAuthenticated   AuthState = "authenticated"
	AuthUnauthenticated AuthState = "unauthenticated"
)
