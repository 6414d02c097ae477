package domain

// Session is the signed-in identity together with its bearer token. A
// Session is replaced wholesale, never edited in place.
type Session struct {
	UserID      string
	DisplayName string
	Email       string
	Role        Role
	Token       string
}

// SessionState is where the session lifecycle currently stands.
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}
