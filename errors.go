package tftbus

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDeviceUnavailable is returned when the bus handle a transport needs
	// is not present.
	ErrDeviceUnavailable = errors.New("tftbus: device unavailable")
	// ErrInvalidArgument is returned for malformed requests.
	ErrInvalidArgument = errors.New("tftbus: invalid argument")
	// ErrMissingScratchBuffer is returned by the 9-bit emulation when no
	// scratch buffer was configured.
	ErrMissingScratchBuffer = errors.New("tftbus: missing scratch buffer")
	// ErrNotImplemented is returned by transports that exist only to fill the
	// Bus interface.
	ErrNotImplemented = errors.New("tftbus: not implemented")
	// ErrHardwareTransferFailed matches every *TransferError.
	ErrHardwareTransferFailed = errors.New("tftbus: hardware transfer failed")
)

// TransferError reports a failure of the underlying bus or pin primitive.
//
// The cause is kept as is; nothing in this package retries.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("tftbus: %s: %v", e.Op, e.Err)
}

// Unwrap returns the error reported by the primitive.
func (e *TransferError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrHardwareTransferFailed) true.
func (e *TransferError) Is(target error) bool {
	return target == ErrHardwareTransferFailed
}

func transferError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransferError{Op: op, Err: err}
}
