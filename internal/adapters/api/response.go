package api

// Response is the envelope of every API response.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo describes a failed request.
type ErrorInfo struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeSelection  = "INVALID_SELECTION"
	ErrCodePath       = "INVALID_PATH"
	ErrCodeGeneration = "GENERATION_FAILED"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

func successResponse(data any) Response {
	return Response{Success: true, Data: data}
}

func errorResponse(code, message string, details ...string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
