package dto

// AuthenticationRequest payload for credential verification.
type AuthenticationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticationResponse carries the issued access token.
type AuthenticationResponse struct {
	AccessToken string `json:"access_token"`
}

// ErrorResponse is the uniform error body for every failure path.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Details    []string `json:"details"`
}
