package board

import (
	"errors"

	"github.com/ezrec/mee/translate"
)

var f = translate.From

var (
	ErrValueType  = errors.New(f("value type invalid"))
	ErrValueRange = errors.New(f("value out of range"))
	ErrAddress    = errors.New(f("address outside memory"))
)

// ErrConfig indicates the board setting that could not be used.
type ErrConfig struct {
	Key string
	Err error
}

func (err *ErrConfig) Error() string {
	return f("board %v: %v", err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
