package apperrors

type Type string

const (
	TypeValidation Type = "validation"
	TypeNotFound   Type = "not_found"
	TypeConflict   Type = "conflict"
	TypeUpstream   Type = "upstream"
	TypeInternal   Type = "internal"
)

type AppError struct {
	Type    Type           `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

// IsType reports whether the error belongs to the given type. A nil error belongs to none.
func (e *AppError) IsType(errorType Type) bool {
	return e != nil && e.Type == errorType
}

func NewInternal(code, message string, details map[string]any) *AppError {
	return newAppError(TypeInternal, code, message, details)
}

func NewValidation(code, message string, details map[string]any) *AppError {
	return newAppError(TypeValidation, code, message, details)
}

func NewNotFound(code, message string, details map[string]any) *AppError {
	return newAppError(TypeNotFound, code, message, details)
}

func NewConflict(code, message string, details map[string]any) *AppError {
	return newAppError(TypeConflict, code, message, details)
}

// NewUpstream reports a failure of a remote collaborator (mirror node, content gateway).
func NewUpstream(code, message string, details map[string]any) *AppError {
	return newAppError(TypeUpstream, code, message, details)
}

func newAppError(errorType Type, code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Details: details,
	}
}
