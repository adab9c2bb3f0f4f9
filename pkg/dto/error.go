package dto

// ErrorResponse is the body of every non-2xx response. Detail carries the
// underlying cause, Details the per-item validation messages.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Detail  string   `json:"detail,omitempty"`
	Details []string `json:"details,omitempty"`
}
