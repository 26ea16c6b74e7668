package vkfft

import (
	"github.com/pkg/errors"

	"github.com/gomlx/vkfft/internal/vkffi"
)

// Sentinel errors of the wrapper's taxonomy. Returned errors wrap one of
// these (test with errors.Is) and carry context: the first violated
// constraint for configuration errors, the offending role for binding
// errors, and the native result code whenever a native call failed.
var (
	// ErrInvalidConfiguration reports a transform description the library
	// cannot compile: bad dimensionality, unsupported lengths, bad kernel
	// shape, zero batch count.
	ErrInvalidConfiguration = errors.New("vkfft: invalid configuration")

	// ErrUnsupportedPrecision reports a precision mode the device or the
	// library build cannot provide.
	ErrUnsupportedPrecision = errors.New("vkfft: unsupported precision")

	// ErrOutOfMemory reports a native host or device allocation failure
	// during plan creation.
	ErrOutOfMemory = errors.New("vkfft: out of memory")

	// ErrDeviceError reports a native or device-level failure unrelated to
	// the configuration.
	ErrDeviceError = errors.New("vkfft: device error")

	// ErrInvalidBinding reports a missing or mis-sized buffer role at
	// launch time.
	ErrInvalidBinding = errors.New("vkfft: invalid buffer binding")

	// ErrUseAfterFree reports an operation against a destroyed App. It is a
	// programming error, never a retryable condition.
	ErrUseAfterFree = errors.New("vkfft: use of destroyed plan")

	// ErrDoubleFree reports a second Destroy of the same App. It is a
	// programming error, never a retryable condition.
	ErrDoubleFree = errors.New("vkfft: plan destroyed twice")

	// ErrExecutionFailed reports a native command-recording failure. No
	// command-buffer rollback is attempted; resetting the command buffer is
	// the caller's responsibility.
	ErrExecutionFailed = errors.New("vkfft: native recording failed")
)

// nativeError maps a non-success result from plan initialization onto the
// wrapper taxonomy, keeping the native code in the message. Native codes are
// surfaced, never swallowed.
func nativeError(res vkffi.Result) error {
	var sentinel error
	switch res.Classify() {
	case vkffi.ClassMemory:
		sentinel = ErrOutOfMemory
	case vkffi.ClassPrecision:
		sentinel = ErrUnsupportedPrecision
	case vkffi.ClassConfiguration:
		sentinel = ErrInvalidConfiguration
	default:
		sentinel = ErrDeviceError
	}
	return errors.Wrapf(sentinel, "native library returned %s", res)
}
