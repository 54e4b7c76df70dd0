package types

// Envelope is the wire shape every API response uses.
type Envelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError carries the machine-readable failure tag.
type APIError struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}
