// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package riscv implements the Cpu capability table for RISC-V harts with a
// CLINT and a CPU-local interrupt controller.
package riscv

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math/bits"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/ezrec/mee/clint"
	"github.com/ezrec/mee/cpu"
	"github.com/ezrec/mee/interrupt"
	"github.com/ezrec/mee/intc"
)

// Config describes one hart.
type Config struct {
	HartId    int          // Hart id; must be served by Clint.
	Frequency uint64       // Cycle counter rate in ticks per second; 0 if absent.
	Clock     clock.Clock  // Time source; the wall clock if nil.
	Clint     *clint.Clint // Shared core-local interruptor.
	Memory    io.ReaderAt  // Instruction memory, addressed by physical address.
	Verbose   bool         // Set to enable verbose logging.
}

// Hart is one RISC-V hart. All harts of a board share one clock, so their
// cycle counters advance in lockstep.
type Hart struct {
	verbose bool

	id        int
	frequency uint64
	clock     clock.Clock
	epoch     time.Time
	memory    io.ReaderAt

	clint *clint.Clint
	intc  *intc.Intc
	port  *clint.Port
}

var _ cpu.Cpu = (*Hart)(nil)

// NewHart creates a hart and its local interrupt controller, and attaches
// the CLINT lines to it.
func NewHart(cfg Config) (hart *Hart, err error) {
	if cfg.Clint == nil {
		err = &cpu.ErrHart{HartId: cfg.HartId, Err: ErrClintMissing}
		return
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	ic := intc.NewIntc(cfg.HartId)
	ic.Verbose = cfg.Verbose

	port, err := cfg.Clint.Port(cfg.HartId, ic)
	if err != nil {
		return
	}

	for _, id := range []int{interrupt.SoftwareID, interrupt.TimerID} {
		err = ic.Attach(id, port)
		if err != nil {
			return
		}
	}

	hart = &Hart{
		verbose:   cfg.Verbose,
		id:        cfg.HartId,
		frequency: cfg.Frequency,
		clock:     clk,
		epoch:     clk.Now(),
		memory:    cfg.Memory,
		clint:     cfg.Clint,
		intc:      ic,
		port:      port,
	}

	if hart.verbose {
		log.Printf("riscv: hart %d: created, %d Hz", hart.id, hart.frequency)
	}

	return
}

// HartId returns the id of the hart.
func (hart *Hart) HartId() int {
	return hart.id
}

// Timer returns the cycle count of the named hart.
func (hart *Hart) Timer(hartid int) (value uint64, err error) {
	if hartid < 0 || hartid >= hart.clint.Harts() {
		err = &cpu.ErrHart{HartId: hartid, Err: cpu.ErrHartInvalid}
		return
	}

	if hart.frequency == 0 {
		err = &cpu.ErrHart{HartId: hartid, Err: cpu.ErrTimerUnavailable}
		return
	}

	elapsed := hart.clock.Since(hart.epoch)
	if elapsed <= 0 {
		return
	}

	hi, lo := bits.Mul64(uint64(elapsed), hart.frequency)
	if hi >= uint64(time.Second) {
		value = ^uint64(0)
		return
	}

	value, _ = bits.Div64(hi, lo, uint64(time.Second))

	return
}

// Timebase returns the cycle counter rate.
func (hart *Hart) Timebase() (value uint64, err error) {
	if hart.frequency == 0 {
		err = &cpu.ErrHart{HartId: hart.id, Err: cpu.ErrTimerUnavailable}
		return
	}

	value = hart.frequency

	return
}

// Mtime returns the real-time clock, or 0 before the timer controller is
// initialized.
func (hart *Hart) Mtime() uint64 {
	return hart.clint.Mtime()
}

// SetMtimecmp sets this hart's timer compare register.
func (hart *Hart) SetMtimecmp(value uint64) error {
	return hart.clint.SetMtimecmp(hart.id, value)
}

// TimerInterruptController returns this hart's CLINT port.
func (hart *Hart) TimerInterruptController() interrupt.Controller {
	return hart.port
}

// TimerInterruptID returns the machine timer line.
func (hart *Hart) TimerInterruptID() int {
	return interrupt.TimerID
}

// SoftwareInterruptController returns this hart's CLINT port.
func (hart *Hart) SoftwareInterruptController() interrupt.Controller {
	return hart.port
}

// SoftwareInterruptID returns the machine software line.
func (hart *Hart) SoftwareInterruptID() int {
	return interrupt.SoftwareID
}

// SetIPI raises the software interrupt of the named hart.
func (hart *Hart) SetIPI(hartid int) error {
	return hart.clint.SetMsip(hartid, true)
}

// ClearIPI clears the software interrupt of the named hart.
func (hart *Hart) ClearIPI(hartid int) error {
	return hart.clint.SetMsip(hartid, false)
}

// MSIP returns the software interrupt pending bit of the named hart.
func (hart *Hart) MSIP(hartid int) (bool, error) {
	return hart.clint.Msip(hartid)
}

// InterruptController returns the local interrupt controller.
func (hart *Hart) InterruptController() interrupt.Controller {
	return hart.intc
}

// RegisterException binds a handler to an exception code on this hart.
func (hart *Hart) RegisterException(ecode cpu.ExceptionCode, handler cpu.ExceptionHandler) error {
	return hart.intc.RegisterException(ecode, handler)
}

// InstructionLength returns the length of the instruction at addr.
func (hart *Hart) InstructionLength(addr uintptr) (length int, err error) {
	if hart.memory == nil {
		err = &cpu.ErrHart{HartId: hart.id, Err: cpu.ErrAddressInvalid}
		return
	}

	var parcel [2]byte
	n, err := hart.memory.ReadAt(parcel[:], int64(addr))
	if n != len(parcel) {
		err = &cpu.ErrHart{HartId: hart.id, Err: cpu.ErrAddressInvalid}
		return
	}
	err = nil

	length = cpu.InstructionLength(binary.LittleEndian.Uint16(parcel[:]))

	return
}

// Trap delivers exception ecode taken at epc to this hart, and returns the
// address execution resumes at.
func (hart *Hart) Trap(ecode cpu.ExceptionCode, epc uintptr) (resume uintptr, err error) {
	return hart.intc.Trap(hart, ecode, epc)
}

// Poll dispatches the pending and enabled interrupts of this hart, and
// returns the number of handlers run.
func (hart *Hart) Poll() int {
	return hart.intc.Poll()
}

// String returns the interrupt state of the hart as a string.
func (hart *Hart) String() (text string) {
	regs := []string{"hart", "mtime", "mtimecmp", "msip", "intc"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "hart":
			strval = fmt.Sprintf("%d", hart.id)
		case "mtime":
			strval = fmt.Sprintf("%016x", hart.Mtime())
		case "mtimecmp":
			val, _ := hart.clint.Mtimecmp(hart.id)
			strval = fmt.Sprintf("%016x", val)
		case "msip":
			val, err := hart.MSIP(hart.id)
			switch {
			case err != nil:
				strval = "-"
			case val:
				strval = "1"
			default:
				strval = "0"
			}
		case "intc":
			strval = hart.intc.String()
		}
		text += fmt.Sprintf("% 8s: %v\n", reg, strval)
	}

	return
}
