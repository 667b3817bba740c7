package errors

// ErrorCode identifies an application error category in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	ErrorCode_WEBHOOK_INVALID_SIGNATURE ErrorCode = 2000
	ErrorCode_WEBHOOK_PROCESSING_FAILED ErrorCode = 2001

	ErrorCode_CALL_NOT_FOUND    ErrorCode = 3000
	ErrorCode_CALL_START_FAILED ErrorCode = 3001
	ErrorCode_CALL_SYNC_FAILED  ErrorCode = 3002

	ErrorCode_TRANSCRIPT_NOT_AVAILABLE ErrorCode = 4000
	ErrorCode_PROCESSING_FAILED        ErrorCode = 4001

	ErrorCode_AGENT_NOT_FOUND        ErrorCode = 5000
	ErrorCode_AGENT_CREATION_FAILED  ErrorCode = 5001
	ErrorCode_PROMPT_NOT_FOUND       ErrorCode = 5002

	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 6000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 6001
	ErrorCode_DB_QUERY_FAILED                 ErrorCode = 6002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:          "HTTP_OK",
	ErrorCode_INTERNAL:         "INTERNAL",
	ErrorCode_INVALID_ARGUMENT: "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:        "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:  "INVALID_PAYLOAD",

	ErrorCode_WEBHOOK_INVALID_SIGNATURE: "WEBHOOK_INVALID_SIGNATURE",
	ErrorCode_WEBHOOK_PROCESSING_FAILED: "WEBHOOK_PROCESSING_FAILED",

	ErrorCode_CALL_NOT_FOUND:    "CALL_NOT_FOUND",
	ErrorCode_CALL_START_FAILED: "CALL_START_FAILED",
	ErrorCode_CALL_SYNC_FAILED:  "CALL_SYNC_FAILED",

	ErrorCode_TRANSCRIPT_NOT_AVAILABLE: "TRANSCRIPT_NOT_AVAILABLE",
	ErrorCode_PROCESSING_FAILED:        "PROCESSING_FAILED",

	ErrorCode_AGENT_NOT_FOUND:       "AGENT_NOT_FOUND",
	ErrorCode_AGENT_CREATION_FAILED: "AGENT_CREATION_FAILED",
	ErrorCode_PROMPT_NOT_FOUND:      "PROMPT_NOT_FOUND",

	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
