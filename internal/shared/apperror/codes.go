package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidState      = "INVALID_STATE"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeExtractionFailed   = "EXTRACTION_FAILED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
