package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_007"
	ErrCodeNotImplemented     ErrorCode = "COMMON_008"
)

// Chemistry toolkit error codes.
const (
	ErrCodeInvalidSMILES    ErrorCode = "CHEM_001"
	ErrCodeValenceViolation ErrorCode = "CHEM_002"
	ErrCodeRingClosure      ErrorCode = "CHEM_003"
	ErrCodeDescriptorFailed ErrorCode = "CHEM_004"
	ErrCodeRenderFailed     ErrorCode = "CHEM_005"
)

// Generation error codes.
const (
	ErrCodeLibraryEmpty     ErrorCode = "GEN_001"
	ErrCodeLibraryInvalid   ErrorCode = "GEN_002"
	ErrCodeCountOutOfRange  ErrorCode = "GEN_003"
	ErrCodeRunNotFound      ErrorCode = "GEN_004"
	ErrCodeMoleculeNotFound ErrorCode = "GEN_005"
)

// Short aliases used at call sites across the codebase.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeInvalidSMILES:    http.StatusBadRequest,
	ErrCodeValenceViolation: http.StatusBadRequest,
	ErrCodeRingClosure:      http.StatusBadRequest,
	ErrCodeDescriptorFailed: http.StatusInternalServerError,
	ErrCodeRenderFailed:     http.StatusInternalServerError,

	ErrCodeLibraryEmpty:     http.StatusBadRequest,
	ErrCodeLibraryInvalid:   http.StatusBadRequest,
	ErrCodeCountOutOfRange:  http.StatusBadRequest,
	ErrCodeRunNotFound:      http.StatusNotFound,
	ErrCodeMoleculeNotFound: http.StatusNotFound,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeInvalidSMILES:    "invalid SMILES notation",
	ErrCodeValenceViolation: "atom valence exceeded",
	ErrCodeRingClosure:      "unmatched ring closure",
	ErrCodeDescriptorFailed: "descriptor computation failed",
	ErrCodeRenderFailed:     "structure rendering failed",

	ErrCodeLibraryEmpty:     "fragment/linker library is empty",
	ErrCodeLibraryInvalid:   "fragment/linker library entry is not parseable",
	ErrCodeCountOutOfRange:  "requested molecule count is out of range",
	ErrCodeRunNotFound:      "generation run not found",
	ErrCodeMoleculeNotFound: "molecule not found in run",
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
