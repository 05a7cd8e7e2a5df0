package riscv

import (
	"errors"

	"github.com/ezrec/mee/translate"
)

var f = translate.From

var (
	ErrClintMissing = errors.New(f("clint missing"))
)
