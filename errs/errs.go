// Package errs defines the error taxonomy returned by the extractor.
//
// Every failure is an *Error carrying a stable Code. Sentinel values such as
// ErrDecipherTimeout can be matched with errors.Is; matching compares codes,
// so wrapped errors and errors built with extra details still match.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes
const (
	CodeInvalidInput             = "INVALID_INPUT"
	CodeNetwork                  = "NETWORK_ERROR"
	CodePlayerResponseNotFound   = "PLAYER_RESPONSE_NOT_FOUND"
	CodeMissingField             = "MISSING_FIELD"
	CodeDecipherAssetNotFound    = "DECIPHER_ASSET_NOT_FOUND"
	CodeDecipherFunctionNotFound = "DECIPHER_FUNCTION_NOT_FOUND"
	CodeDecipherTimeout          = "DECIPHER_TIMEOUT"
	CodeDecipherCallback         = "DECIPHER_CALLBACK_ERROR"
	CodeNoPlayableFormats        = "NO_PLAYABLE_FORMATS"
)

var (
	// ErrInvalidInput indicates the identifier is not a watch URL, short URL or bare id.
	ErrInvalidInput = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	// ErrNetwork indicates a connection failure, timeout or non-success status.
	ErrNetwork = &Error{Code: CodeNetwork, Message: "network error"}
	// ErrPlayerResponseNotFound indicates the page carries no embedded player response.
	ErrPlayerResponseNotFound = &Error{Code: CodePlayerResponseNotFound, Message: "player response not found"}
	// ErrMissingField indicates a required metadata field is absent.
	ErrMissingField = &Error{Code: CodeMissingField, Message: "missing field"}
	// ErrDecipherAssetNotFound indicates the page references no player script.
	ErrDecipherAssetNotFound = &Error{Code: CodeDecipherAssetNotFound, Message: "decipher asset not found"}
	// ErrDecipherFunctionNotFound indicates the player script has no recognizable decipher function.
	ErrDecipherFunctionNotFound = &Error{Code: CodeDecipherFunctionNotFound, Message: "decipher function not found"}
	// ErrDecipherTimeout indicates the evaluator did not call back in time.
	ErrDecipherTimeout = &Error{Code: CodeDecipherTimeout, Message: "decipher timeout"}
	// ErrDecipherCallback indicates the evaluator reported an error.
	ErrDecipherCallback = &Error{Code: CodeDecipherCallback, Message: "decipher callback error"}
	// ErrNoPlayableFormats indicates no format survived extraction.
	ErrNoPlayableFormats = &Error{Code: CodeNoPlayableFormats, Message: "no playable formats"}
)

// Error represents a structured error with code and details
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	s := e.Code + ": " + e.Message
	if e.Details != nil {
		s += fmt.Sprintf(" (%v)", e.Details)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// MarshalJSON implements json.Marshaler
func (e *Error) MarshalJSON() ([]byte, error) {
	type Alias Error
	return json.Marshal(&struct {
		*Alias
		Error string `json:"error"`
	}{
		Alias: (*Alias)(e),
		Error: e.Error(),
	})
}

// New creates a new Error with the given code and message
func New(code string, message string, details ...any) *Error {
	e := &Error{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// Wrap creates an Error with the given code that wraps cause.
func Wrap(code string, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

// MissingField reports that the named required field is absent or unusable.
func MissingField(name string) *Error {
	return &Error{Code: CodeMissingField, Message: "missing field", Details: name}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsParse reports whether err is one of the page or script parse failures.
func IsParse(err error) bool {
	switch CodeOf(err) {
	case CodePlayerResponseNotFound, CodeMissingField, CodeDecipherAssetNotFound, CodeDecipherFunctionNotFound:
		return true
	}
	return false
}

// IsTimeout returns true if the error is a decipher timeout.
func IsTimeout(err error) bool {
	return CodeOf(err) == CodeDecipherTimeout
}

// IsNetwork returns true if the error is a network failure.
func IsNetwork(err error) bool {
	return CodeOf(err) == CodeNetwork
}

// IsDecipher returns true for failures of the script evaluation round-trip.
func IsDecipher(err error) bool {
	c := CodeOf(err)
	return c == CodeDecipherTimeout || c == CodeDecipherCallback
}
