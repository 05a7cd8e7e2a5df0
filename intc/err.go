package intc

import (
	"errors"

	"github.com/ezrec/mee/cpu"
	"github.com/ezrec/mee/translate"
)

var f = translate.From

var (
	ErrNested    = errors.New(f("nested exception"))
	ErrUnhandled = errors.New(f("unhandled exception"))
)

// ErrTrap indicates the hart and exception of a failed trap delivery.
type ErrTrap struct {
	HartId int
	Code   cpu.ExceptionCode
	Pc     uintptr
	Err    error
}

func (err *ErrTrap) Error() string {
	return f("hart %d %v at 0x%x %v", err.HartId, err.Code, err.Pc, err.Err)
}

func (err *ErrTrap) Unwrap() error {
	return err.Err
}
