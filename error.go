package errpath

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrNotSupported is reported by backends for decode kinds they can not
// deliver. See [DeserializerBase].
var ErrNotSupported = errors.New("not supported")

// Error couples a backend decode error with the [Path] at which it
// occurred. The original error is carried unchanged and remains reachable
// through [errors.As] and [errors.Is].
type Error struct {
	path Path
	err  error
}

// Path returns the location of the value whose decoding failed.
func (e *Error) Path() Path { return e.path }

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Error() string {
	return e.path.String() + ": " + e.err.Error()
}

// InvalidTypeError reports that a backend delivered a value of a shape the
// visitor did not expect.
type InvalidTypeError struct {
	// Got describes the delivered value, e.g. `string "500"`.
	Got string

	// Want is the visitor's expectation, e.g. "a 32 bit unsigned integer".
	Want string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Got, e.Want)
}

// MissingFieldError reports that a required struct field had no value. See
// [Decoder.RequireValues].
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// NotSupportedError reports a target type [Unmarshal] can not decode into.
type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}

func describeBool(v bool) string {
	return "boolean " + strconv.FormatBool(v)
}

func describeInt(v int64) string {
	return "integer " + strconv.FormatInt(v, 10)
}

func describeUint(v uint64) string {
	return "integer " + strconv.FormatUint(v, 10)
}

func describeFloat(v float64) string {
	return "number " + strconv.FormatFloat(v, 'g', -1, 64)
}

func describeString(v string) string {
	return "string " + strconv.Quote(v)
}
