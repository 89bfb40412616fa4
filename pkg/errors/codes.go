package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are grouped by module prefix: COMMON, LST (listings), BYR (buyers),
// MCH (match scoring), VAL (valuation), CACHE, EVT (marketplace events).
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeMessagingError     ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_015"
)

// Listing module error codes
const (
	ErrCodeListingNotFound      ErrorCode = "LST_001"
	ErrCodeListingAlreadyExists ErrorCode = "LST_002"
	ErrCodeListingInvalid       ErrorCode = "LST_003"
)

// Buyer module error codes
const (
	ErrCodeBuyerNotFound       ErrorCode = "BYR_001"
	ErrCodeBuyerProfileInvalid ErrorCode = "BYR_002"
)

// Match-scoring module error codes
const (
	ErrCodeMatchScoringFailed  ErrorCode = "MCH_001"
	ErrCodeMatchScoreNotFound  ErrorCode = "MCH_002"
	ErrCodeMatchWeightsInvalid ErrorCode = "MCH_003"
	ErrCodeMatchBatchTooLarge  ErrorCode = "MCH_004"
)

// Valuation module error codes
const (
	ErrCodeValuationFailed           ErrorCode = "VAL_001"
	ErrCodeValuationDataInsufficient ErrorCode = "VAL_002"
	ErrCodeValuationNotFound         ErrorCode = "VAL_003"
	ErrCodeIndustryUnknown           ErrorCode = "VAL_004"
)

// Cache module error codes
const (
	ErrCodeCacheMiss         ErrorCode = "CACHE_001"
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_002"
	ErrCodeCacheEventUnknown ErrorCode = "CACHE_003"
)

// Marketplace event error codes
const (
	ErrCodeEventMalformed   ErrorCode = "EVT_001"
	ErrCodeEventUnsupported ErrorCode = "EVT_002"
)

// Aliases kept for terse call sites
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeValidation   = ErrCodeValidation
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessagingError:     http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeListingNotFound:      http.StatusNotFound,
	ErrCodeListingAlreadyExists: http.StatusConflict,
	ErrCodeListingInvalid:       http.StatusBadRequest,

	ErrCodeBuyerNotFound:       http.StatusNotFound,
	ErrCodeBuyerProfileInvalid: http.StatusBadRequest,

	ErrCodeMatchScoringFailed:  http.StatusInternalServerError,
	ErrCodeMatchScoreNotFound:  http.StatusNotFound,
	ErrCodeMatchWeightsInvalid: http.StatusBadRequest,
	ErrCodeMatchBatchTooLarge:  http.StatusBadRequest,

	ErrCodeValuationFailed:           http.StatusInternalServerError,
	ErrCodeValuationDataInsufficient: http.StatusUnprocessableEntity,
	ErrCodeValuationNotFound:         http.StatusNotFound,
	ErrCodeIndustryUnknown:           http.StatusBadRequest,

	ErrCodeCacheMiss:         http.StatusNotFound,
	ErrCodeCacheUnavailable:  http.StatusServiceUnavailable,
	ErrCodeCacheEventUnknown: http.StatusBadRequest,

	ErrCodeEventMalformed:   http.StatusBadRequest,
	ErrCodeEventUnsupported: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessagingError:     "messaging error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeListingNotFound:      "business listing not found",
	ErrCodeListingAlreadyExists: "business listing already exists",
	ErrCodeListingInvalid:       "invalid business listing",

	ErrCodeBuyerNotFound:       "buyer profile not found",
	ErrCodeBuyerProfileInvalid: "invalid buyer profile",

	ErrCodeMatchScoringFailed:  "match scoring failed",
	ErrCodeMatchScoreNotFound:  "match score not found",
	ErrCodeMatchWeightsInvalid: "invalid match weights",
	ErrCodeMatchBatchTooLarge:  "batch scoring request too large",

	ErrCodeValuationFailed:           "business valuation failed",
	ErrCodeValuationDataInsufficient: "insufficient data for valuation",
	ErrCodeValuationNotFound:         "valuation not found",
	ErrCodeIndustryUnknown:           "unknown industry sector",

	ErrCodeCacheMiss:         "cache miss",
	ErrCodeCacheUnavailable:  "cache unavailable",
	ErrCodeCacheEventUnknown: "unknown invalidation event",

	ErrCodeEventMalformed:   "malformed marketplace event",
	ErrCodeEventUnsupported: "unsupported marketplace event",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
