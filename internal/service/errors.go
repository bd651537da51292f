package service

import "fmt"

const CodeNotFound = "NOT_FOUND"
const CodeValidation = "VALIDATION_ERROR"

// BusinessError carries a machine-readable code for the HTTP boundary.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(resource string, id any) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
		Details: map[string]any{"resource": resource, "id": id},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("invalid value for '%s': %s", field, reason),
		Details: map[string]any{"field": field, "reason": reason},
	}
}
