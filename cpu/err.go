package cpu

import (
	"errors"

	"github.com/ezrec/mee/interrupt"
	"github.com/ezrec/mee/translate"
)

var f = translate.From

var (
	// Registry errors
	ErrHartInvalid       = errors.New(f("hart invalid"))
	ErrHartMissing       = errors.New(f("hart missing"))
	ErrRegistryEmpty     = errors.New(f("registry empty"))
	ErrRegistryInstalled = errors.New(f("registry already installed"))
	ErrRegistryMissing   = errors.New(f("registry not installed"))

	// Capability errors
	ErrTimerUnavailable        = errors.New(f("timer unavailable"))
	ErrControllerUninitialized = interrupt.ErrUninitialized
	ErrExceptionCode           = errors.New(f("exception code out of range"))
	ErrHandlerNil              = errors.New(f("exception handler nil"))
	ErrAddressInvalid          = errors.New(f("instruction address invalid"))
)

// ErrHart annotates an error with the hart it concerns.
type ErrHart struct {
	HartId int
	Err    error
}

func (err *ErrHart) Error() string {
	return f("hart %d %v", err.HartId, err.Err)
}

func (err *ErrHart) Unwrap() error {
	return err.Err
}
