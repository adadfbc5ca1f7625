package walletdesc

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrFormat indicates malformed user input: a key origin, derivation
	// path, fingerprint or extended key that cannot be parsed, or a
	// descriptor key without key origin information.
	ErrFormat ErrorCode = iota

	// ErrStructure indicates a descriptor node with more than one
	// sub-branch.
	ErrStructure

	// ErrTemplate indicates a descriptor whose script-kind chain matches
	// none of the supported address types.
	ErrTemplate

	// ErrDomain indicates a well formed value outside the supported domain,
	// such as an unknown coin type in a key origin.
	ErrDomain

	// ErrProviderCount indicates a key provider list whose length does not
	// fit the address type and threshold.
	ErrProviderCount

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrFormat:        "ErrFormat",
	ErrStructure:     "ErrStructure",
	ErrTemplate:      "ErrTemplate",
	ErrDomain:        "ErrDomain",
	ErrProviderCount: "ErrProviderCount",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a failure of a walletdesc operation. The caller can use
// type assertions or IsErrorCode to determine the specific kind of error.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error, optional
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// IsErrorCode returns whether or not the provided error is, or wraps, an
// Error with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}

func makeError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

func formatError(desc string, err error) Error {
	return makeError(ErrFormat, desc, err)
}

// errMissingParams is returned when an operation needs the network
// parameters and none were given.
var errMissingParams = makeError(ErrDomain, "missing network parameters", nil)
