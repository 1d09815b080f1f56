// Package errors provides the structured error type used across seqinput.
//
// Every failure is an *AppError carrying a machine-readable ErrorCode.
// Construction errors (MALFORMED_DEFINITION, UNKNOWN_PIPELINE_CLASS,
// INVALID_ARGUMENT) are raised before any file is opened; read errors
// (FILE_NOT_FOUND, FIELD_NOT_FOUND, MISALIGNED_FILES, INVALID_FORMAT) surface
// through the reading session. None of them is retryable.
//
// Codes match through the standard library:
//
//	if errors.Is(err, seqerrors.ErrMisalignedFiles) { ... }
package errors
