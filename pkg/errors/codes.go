package errors

// Stable failure codes written to the "code" field of error bodies.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeCSRFInvalid     = "CSRF_INVALID"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeRateLimited     = "RATE_LIMITED"
	CodeModelFailure    = "MODEL_FAILURE"
	CodeParseFailure    = "PARSE_FAILURE"
	CodeNotFound        = "NOT_FOUND"
	CodeStorageFailure  = "STORAGE_FAILURE"
	CodeServerFailure   = "SERVER_FAILURE"
)
