package httpdto

// ErrorResponse is the uniform failure envelope. The message stays short;
// internal detail is logged server-side, never returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{Error: err, Code: code}
}
