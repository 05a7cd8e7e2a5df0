//go:build meedebug

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExceptionContextExpired(t *testing.T) {
	assert := assert.New(t)

	hart := &fakeCpu{
		memory: map[uintptr]uint16{0x100: 0x9002},
	}

	var leaked *ExceptionContext
	resume := Dispatch(hart, func(ctx *ExceptionContext, ecode ExceptionCode) {
		assert.NotPanics(func() { ctx.SetPC(ctx.PC()) })
		leaked = ctx
	}, ECODE_BREAKPOINT, 0x100)
	assert.Equal(uintptr(0x100), resume)

	assert.PanicsWithValue("mee: contract violation: exception pc read after handler returned", func() { leaked.PC() })
	assert.PanicsWithValue("mee: contract violation: exception pc written after handler returned", func() { leaked.SetPC(0x200) })
	assert.Panics(func() { _ = leaked.Skip() })

	// The code and hart stay readable.
	assert.Equal(ECODE_BREAKPOINT, leaked.Code())
	assert.Equal(Cpu(hart), leaked.Cpu())
}
