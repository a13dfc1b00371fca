package entity

// Credentials are built per login attempt and never persisted.
type Credentials struct {
	Email    string
	Password string
}

// StandardResponse is the envelope returned by every user service call.
// Success=false means the call failed even though the transport succeeded.
type StandardResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	StatusCode int32             `json:"status_code"`
	Timestamp  string            `json:"timestamp"`
	RequestID  string            `json:"request_id"`
	Errors     []string          `json:"errors"`
	Metadata   map[string]string `json:"metadata"`
}

// AuthResult is produced once per successful authentication call. Its fields
// are unpacked into the session; the struct itself is never stored.
type AuthResult struct {
	Response     StandardResponse `json:"response"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         User             `json:"user"`
}
