package codec

import (
	"errors"
	"fmt"
)

// ErrEndOfData signals clean exhaustion of the input stream at a record
// boundary. It is not an application-visible failure: iteration loops
// translate it into "no further records".
var ErrEndOfData = errors.New("end of data")

// FormatError reports byte content that does not satisfy the wire format:
// bad magic, bad enum discriminant, invalid timestamp, malformed quoting,
// wrong header, missing or extra key, non-numeric field.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "wrong format: " + e.Reason
}

func formatErrorf(format string, args ...interface{}) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// IOError reports a failure of the backing stream for reasons other than
// clean exhaustion, including EOF in the middle of a record.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "io error: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioError(err error) error {
	return &IOError{Err: err}
}
