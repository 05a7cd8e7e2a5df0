package console

import (
	"errors"

	"github.com/ezrec/mee/translate"
)

var f = translate.From

var (
	ErrNotSupported = errors.New(f("not supported"))
)
