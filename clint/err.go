package clint

import (
	"errors"

	"github.com/ezrec/mee/translate"
)

var f = translate.From

var (
	ErrParentMissing = errors.New(f("clint port has no local interrupt controller"))
)
