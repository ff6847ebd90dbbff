package cache

import (
	"fmt"
	"time"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// SetOptions modifies a Set call.
type SetOptions struct {
	// NotExists only stores the value if the key is absent. If the key
	// already exists the call is a silent no-op.
	NotExists bool
	// Expire is the time-to-live of the entry. Zero means no expiry.
	Expire time.Duration
}

// ICache is the interface of the shared cache: a fast key-value store that
// is visible to all worker processes while they are alive. Values are raw
// strings (JSON text for dEnv). The cache is not durable, its content may be
// gone at any time.
type ICache interface {
	// Get returns the value for a key. The boolean return value indicates whether a value for the key was found.
	Get(key string) (value string, loaded bool, err error)
	// Set stores a value for a key, see SetOptions for conditional and expiring writes.
	Set(key, value string, opts SetOptions) (err error)
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) (err error)
	// Close releases the resources held by the cache.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
	Err  error   // The underlying error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("CacheError (code %s): %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("CacheError (code %s): %s", e.Code, e.Msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new cache Error with the given code and message.
func NewError(code RetCode, msg string, err error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCUnavailable                     // 1: The cache could not be reached.
	RetCInvalidOperation                // 2: Invalid operation.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCUnavailable:
		return "Unavailable"
	case RetCInvalidOperation:
		return "InvalidOperation"
	default:
		return "Unknown"
	}
}
