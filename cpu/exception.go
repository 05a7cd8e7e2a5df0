package cpu

import (
	"github.com/ezrec/mee/internal/assert"
)

// ExceptionHandler is called on the trapping hart with a context token that
// is valid only until the handler returns.
type ExceptionHandler func(ctx *ExceptionContext, ecode ExceptionCode)

// ExceptionContext is the saved state of the exception being handled.
// It exists only for the dynamic extent of one ExceptionHandler call.
type ExceptionContext struct {
	cpu   Cpu
	ecode ExceptionCode
	epc   uintptr
	live  bool
}

// Cpu returns the handle of the trapping hart.
func (ctx *ExceptionContext) Cpu() Cpu {
	return ctx.cpu
}

// Code returns the exception code being handled.
func (ctx *ExceptionContext) Code() ExceptionCode {
	return ctx.ecode
}

// PC returns the exception program counter.
func (ctx *ExceptionContext) PC() uintptr {
	assert.That(ctx.live, "exception pc read after handler returned")
	return ctx.epc
}

// SetPC sets the address execution resumes at when the handler returns.
func (ctx *ExceptionContext) SetPC(epc uintptr) {
	assert.That(ctx.live, "exception pc written after handler returned")
	ctx.epc = epc
}

// Skip moves the exception program counter past the trapping instruction.
func (ctx *ExceptionContext) Skip() (err error) {
	assert.That(ctx.live, "exception pc written after handler returned")

	length, err := ctx.cpu.InstructionLength(ctx.epc)
	if err != nil {
		return
	}

	ctx.epc += uintptr(length)

	return
}

// Dispatch runs handler for an exception taken at epc on hart c, and returns
// the address execution resumes at.
//
// Dispatch is the only way to obtain an ExceptionContext; interrupt
// controllers call it from their trap entry.
func Dispatch(c Cpu, handler ExceptionHandler, ecode ExceptionCode, epc uintptr) (resume uintptr) {
	ctx := &ExceptionContext{
		cpu:   c,
		ecode: ecode,
		epc:   epc,
		live:  true,
	}
	defer func() {
		ctx.live = false
	}()

	handler(ctx, ecode)

	resume = ctx.epc

	return
}
