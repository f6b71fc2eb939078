package model

// ErrorResponse is the JSON envelope of every failed API call
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Success *bool  `json:"success,omitempty"`
}
