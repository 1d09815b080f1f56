package errors

import (
	"fmt"
	"strings"
)

// AppError is the unified error type for definition, construction and read failures.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError carrying the same code, so that
// errors.Is(err, errors.ErrFileNotFound) matches any FILE_NOT_FOUND error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// Sentinels for errors.Is matching by code.
var (
	ErrMalformedDefinition  = &AppError{Code: ErrCodeMalformedDefinition}
	ErrUnknownPipelineClass = &AppError{Code: ErrCodeUnknownPipelineClass}
	ErrInvalidArgument      = &AppError{Code: ErrCodeInvalidArgument}
	ErrFileNotFound         = &AppError{Code: ErrCodeFileNotFound}
	ErrFieldNotFound        = &AppError{Code: ErrCodeFieldNotFound}
	ErrMisalignedFiles      = &AppError{Code: ErrCodeMisalignedFiles}
	ErrInvalidFormat        = &AppError{Code: ErrCodeInvalidFormat}
	ErrInternal             = &AppError{Code: ErrCodeInternal}
)

// --- Construction errors ---

// MalformedDefinition creates an error for a definition that is not a class/args document.
func MalformedDefinition(reason string) *AppError {
	return &AppError{
		Code: ErrCodeMalformedDefinition, Message: fmt.Sprintf("Malformed pipeline definition: %s", reason),
		Retryable: false,
	}
}

// UnknownPipelineClass creates an error for a class name with no registered factory.
func UnknownPipelineClass(class string, known []string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownPipelineClass, Message: fmt.Sprintf("Unknown input pipeline class %q (known: %s)", class, strings.Join(known, ", ")),
		Retryable: false,
		Details:   map[string]any{"class": class, "known": known},
	}
}

// InvalidArgument creates an error for a bad constructor argument.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
		return &AppError{
			Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument %s: %s", field, reason),
			Retryable: false, Details: details,
		}
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates an INVALID_ARGUMENT error from an aggregated validation message.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: message,
		Retryable: false,
	}
}

// --- Read errors ---

// FileNotFound creates an error for a listed corpus path that does not exist.
func FileNotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeFileNotFound, Message: fmt.Sprintf("Corpus file not found: %s", path),
		Retryable: false,
		Details:   map[string]any{"path": path},
	}
}

// FieldNotFound creates an error for a record that lacks a requested field.
func FieldNotFound(field string) *AppError {
	return &AppError{
		Code: ErrCodeFieldNotFound, Message: fmt.Sprintf("Record has no field %q", field),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// MisalignedFiles creates an error for a source/target pair whose line counts differ.
// line is the 1-based line at which one side ran out.
func MisalignedFiles(source, target string, line int) *AppError {
	return &AppError{
		Code: ErrCodeMisalignedFiles, Message: fmt.Sprintf("Files %s and %s differ in line count at line %d", source, target, line),
		Retryable: false,
		Details:   map[string]any{"source": source, "target": target, "line": line},
	}
}

// InvalidFormat creates an error for corrupt or mistyped content.
func InvalidFormat(what, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("Invalid format for %s: %s", what, reason),
		Retryable: false,
		Details:   map[string]any{"what": what},
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}
