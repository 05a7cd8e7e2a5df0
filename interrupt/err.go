package interrupt

import (
	"errors"

	"github.com/ezrec/mee/translate"
)

var f = translate.From

var (
	ErrUninitialized = errors.New(f("interrupt controller uninitialized"))
	ErrHandlerNil    = errors.New(f("interrupt handler nil"))
)

// ErrId indicates an interrupt id the controller does not serve.
type ErrId int

func (err ErrId) Error() string {
	return f("interrupt id %d invalid", int(err))
}

func (err ErrId) Is(target error) (ok bool) {
	_, ok = target.(ErrId)
	return
}
