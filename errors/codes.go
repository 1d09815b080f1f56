package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors. These are raised before any file is touched.
const (
	// ErrCodeMalformedDefinition indicates a pipeline definition that does not
	// parse into the class/args shape.
	ErrCodeMalformedDefinition ErrorCode = "MALFORMED_DEFINITION"
	// ErrCodeUnknownPipelineClass indicates a class name with no registered factory.
	ErrCodeUnknownPipelineClass ErrorCode = "UNKNOWN_PIPELINE_CLASS"
	// ErrCodeInvalidArgument indicates an unknown, missing or mistyped constructor argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Read errors. These surface through the reading session.
const (
	// ErrCodeFileNotFound indicates a listed corpus file does not exist.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
	// ErrCodeFieldNotFound indicates a serialized record lacks a requested field.
	ErrCodeFieldNotFound ErrorCode = "FIELD_NOT_FOUND"
	// ErrCodeMisalignedFiles indicates a source/target pair with differing line counts.
	ErrCodeMisalignedFiles ErrorCode = "MISALIGNED_FILES"
	// ErrCodeInvalidFormat indicates corrupt or mistyped record content.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure (I/O, encoding).
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Every code in this package describes a configuration or corpus defect, so
// nothing is retried. The table stays so callers can extend it.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeMalformedDefinition:  false,
	ErrCodeUnknownPipelineClass: false,
	ErrCodeInvalidArgument:      false,
	ErrCodeFileNotFound:         false,
	ErrCodeFieldNotFound:        false,
	ErrCodeMisalignedFiles:      false,
	ErrCodeInvalidFormat:        false,
	ErrCodeInternal:             false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
