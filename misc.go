package sphincsplus

import (
	"encoding/binary"
	"fmt"
	goLog "log"
)

// Kind classifies an Error the way Verify's error-handling taxonomy
// requires: callers can switch on it instead of matching strings.
type Kind int

const (
	// KindNone is the zero value; used by errors with no particular kind.
	KindNone Kind = iota
	// KindMalformedInput means an input was malformed (a buffer of the
	// wrong length, mismatched batch lengths or an unknown parameter-set
	// name); no hashing was attempted.
	KindMalformedInput
	// KindInvalidSignature means every buffer had the right length, but
	// the recomputed root did not match the public key.
	KindInvalidSignature
)

// Error is returned by this package's exported operations, except
// BatchVerify, which aggregates them in a multierror.Error.
type Error interface {
	error
	Kind() Kind   // classification, see Kind
	Inner() error // wrapped error, if any
}

type errorImpl struct {
	msg   string
	kind  Kind
	inner error
}

func (err *errorImpl) Kind() Kind   { return err.kind }
func (err *errorImpl) Inner() error { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.inner.Error())
	}
	return err.msg
}

// Formats a new Error
func errorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...)}
}

// Formats a new Error of the given kind
func kindErrorf(kind Kind, format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), kind: kind}
}

// Formats a new Error that wraps another
func wrapErrorf(err error, format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), inner: err}
}

// Encodes the given uint64 into the buffer out in Big Endian
func encodeUint64Into(x uint64, out []byte) {
	if len(out) > 0 && len(out)%8 == 0 {
		binary.BigEndian.PutUint64(out[len(out)-8:], x)
		for i := 0; i < len(out)-8; i += 8 {
			binary.BigEndian.PutUint64(out[i:i+8], 0)
		}
	} else {
		for i := len(out) - 1; i >= 0; i-- {
			out[i] = byte(x)
			x >>= 8
		}
	}
}

// Encodes the given uint64 as [outLen]byte in Big Endian.
func encodeUint64(x uint64, outLen int) []byte {
	ret := make([]byte, outLen)
	encodeUint64Into(x, ret)
	return ret
}

// Interpret []byte as Big Endian int.
func decodeUint64(in []byte) (ret uint64) {
	for i := 0; i < len(in); i++ {
		ret |= uint64(in[i]) << uint64(8*(len(in)-1-i))
	}
	return
}

type dummyLogger struct{}
type stdlibLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = &dummyLogger{}

// Logger is the sink SetLogger installs for diagnostic messages. No code
// in this package or its internal packages writes to it.
type Logger interface {
	Logf(format string, a ...interface{})
}

// Enables logging to the log package. For more flexibility, see SetLogger().
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// Enables logging. Disable logging by passing nil.
//
// Use EnableLogging if you want to log to the log package.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
