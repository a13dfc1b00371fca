package entity

// AuthErrorKind is the closed set of failures the login flow reports.
type AuthErrorKind int

const (
	KindInvalidCredentials AuthErrorKind = iota + 1
	KindNetwork
	KindServer
	KindDecoding
	KindUnknown
)

func (k AuthErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindNetwork:
		return "network_error"
	case KindServer:
		return "server_error"
	case KindDecoding:
		return "decoding_error"
	case KindUnknown:
		return "unknown_error"
	default:
		return "unknown_error"
	}
}

// AuthError is the only error type that crosses the repository boundary.
// Message is set for KindServer only.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindNetwork:
		return "network error"
	case KindServer:
		if e.Message == "" {
			return "server error"
		}
		return "server error: " + e.Message
	case KindDecoding:
		return "decoding error"
	default:
		return "unknown error"
	}
}

// Is matches on kind. A target without a message matches every error of
// that kind, so errors.Is(err, ErrServer) holds for any server error.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

var (
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials}
	ErrNetwork            = &AuthError{Kind: KindNetwork}
	ErrServer             = &AuthError{Kind: KindServer}
	ErrDecoding           = &AuthError{Kind: KindDecoding}
	ErrUnknown            = &AuthError{Kind: KindUnknown}
)

// NewAuthError returns a fresh error of kind. The Err* values above are
// comparison targets only.
func NewAuthError(kind AuthErrorKind) *AuthError {
	return &AuthError{Kind: kind}
}

// NewServerError builds a KindServer error carrying msg.
func NewServerError(msg string) *AuthError {
	return &AuthError{Kind: KindServer, Message: msg}
}
