// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/mee/interrupt"
)

// ExceptionCode is the synchronous exception cause reported by a trap.
type ExceptionCode int

//go:generate go tool stringer -linecomment -type=ExceptionCode
const (
	ECODE_INSTRUCTION_MISALIGNED = ExceptionCode(0)  // instruction misaligned
	ECODE_INSTRUCTION_FAULT      = ExceptionCode(1)  // instruction fault
	ECODE_ILLEGAL_INSTRUCTION    = ExceptionCode(2)  // illegal instruction
	ECODE_BREAKPOINT             = ExceptionCode(3)  // breakpoint
	ECODE_LOAD_MISALIGNED        = ExceptionCode(4)  // load misaligned
	ECODE_LOAD_FAULT             = ExceptionCode(5)  // load fault
	ECODE_STORE_MISALIGNED       = ExceptionCode(6)  // store misaligned
	ECODE_STORE_FAULT            = ExceptionCode(7)  // store fault
	ECODE_ECALL_U                = ExceptionCode(8)  // ecall from U
	ECODE_ECALL_S                = ExceptionCode(9)  // ecall from S
	ECODE_ECALL_M                = ExceptionCode(11) // ecall from M
	ECODE_INSTRUCTION_PAGE_FAULT = ExceptionCode(12) // instruction page fault
	ECODE_LOAD_PAGE_FAULT        = ExceptionCode(13) // load page fault
	ECODE_STORE_PAGE_FAULT       = ExceptionCode(15) // store page fault
)

// MaxExceptionCode bounds the exception codes a handler can be registered for.
const MaxExceptionCode = 16

var _cpu_defines = map[string]string{
	"ECODE_INSTRUCTION_MISALIGNED": fmt.Sprintf("%d", ECODE_INSTRUCTION_MISALIGNED),
	"ECODE_INSTRUCTION_FAULT":      fmt.Sprintf("%d", ECODE_INSTRUCTION_FAULT),
	"ECODE_ILLEGAL_INSTRUCTION":    fmt.Sprintf("%d", ECODE_ILLEGAL_INSTRUCTION),
	"ECODE_BREAKPOINT":             fmt.Sprintf("%d", ECODE_BREAKPOINT),
	"ECODE_LOAD_MISALIGNED":        fmt.Sprintf("%d", ECODE_LOAD_MISALIGNED),
	"ECODE_LOAD_FAULT":             fmt.Sprintf("%d", ECODE_LOAD_FAULT),
	"ECODE_STORE_MISALIGNED":       fmt.Sprintf("%d", ECODE_STORE_MISALIGNED),
	"ECODE_STORE_FAULT":            fmt.Sprintf("%d", ECODE_STORE_FAULT),
	"ECODE_ECALL_U":                fmt.Sprintf("%d", ECODE_ECALL_U),
	"ECODE_ECALL_S":                fmt.Sprintf("%d", ECODE_ECALL_S),
	"ECODE_ECALL_M":                fmt.Sprintf("%d", ECODE_ECALL_M),
	"ECODE_INSTRUCTION_PAGE_FAULT": fmt.Sprintf("%d", ECODE_INSTRUCTION_PAGE_FAULT),
	"ECODE_LOAD_PAGE_FAULT":        fmt.Sprintf("%d", ECODE_LOAD_PAGE_FAULT),
	"ECODE_STORE_PAGE_FAULT":       fmt.Sprintf("%d", ECODE_STORE_PAGE_FAULT),
	"MAX_EXCEPTION_CODE":           fmt.Sprintf("%d", MaxExceptionCode),
}

// Defines returns an iterator over the exception code constants.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Cpu is the capability table of one hart.
//
// Operations taking a hartid act on the named hart, which may differ from
// the hart the handle represents. A Cpu is immutable and safe for concurrent
// use; the hardware state it fronts is guarded by its interrupt controllers.
type Cpu interface {
	// Timer returns the cycle count of the named hart.
	Timer(hartid int) (value uint64, err error)
	// Timebase returns the frequency of the cycle timer in ticks per second.
	Timebase() (value uint64, err error)

	// Mtime returns the real-time clock. It returns 0 if the timer
	// interrupt controller has not been initialized.
	Mtime() uint64
	// SetMtimecmp sets the real-time clock compare register of this hart.
	// It fails with ErrControllerUninitialized if the timer interrupt
	// controller has not been initialized.
	SetMtimecmp(time uint64) error

	// TimerInterruptController returns the timer interrupt domain.
	TimerInterruptController() interrupt.Controller
	// TimerInterruptID returns the timer interrupt line id.
	TimerInterruptID() int
	// SoftwareInterruptController returns the software (IPI) interrupt domain.
	SoftwareInterruptController() interrupt.Controller
	// SoftwareInterruptID returns the software interrupt line id.
	SoftwareInterruptID() int

	// SetIPI raises the inter-processor interrupt of the named hart.
	SetIPI(hartid int) error
	// ClearIPI clears the inter-processor interrupt of the named hart.
	ClearIPI(hartid int) error
	// MSIP returns the software interrupt pending bit of the named hart.
	MSIP(hartid int) (pending bool, err error)

	// InterruptController returns the local interrupt controller, which
	// also routes exceptions.
	InterruptController() interrupt.Controller
	// RegisterException binds a handler to an exception code, replacing any
	// previous handler for that code.
	RegisterException(ecode ExceptionCode, handler ExceptionHandler) error

	// InstructionLength returns the length in bytes of the instruction at
	// addr: 2 for a compressed instruction, otherwise 4.
	InstructionLength(addr uintptr) (length int, err error)
}
