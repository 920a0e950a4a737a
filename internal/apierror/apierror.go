// Package apierror defines the error envelopes returned by the console API.
// Every 4xx/5xx response goes through one of these shapes so that internal
// details (stack traces, store failures) never reach the browser.
package apierror

// APIError is the canonical single-message error envelope.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries the field-keyed ErrorSet produced when a
// comprobante (or any other form) fails validation. Only failing fields
// appear in Fields.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
