// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package intc simulates the CPU-local interrupt controller of a RISC-V
// hart. It masks and dispatches the local interrupt lines and routes
// synchronous exceptions to their registered handlers.
package intc

import (
	"fmt"
	"log"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/ezrec/mee/cpu"
	"github.com/ezrec/mee/interrupt"
)

// Source drives the pending state of local interrupt lines.
type Source interface {
	Pending(id int) bool
}

// Dispatch order of the local lines, highest priority first.
var priority = []int{
	interrupt.ExternalID,
	interrupt.SoftwareID,
	interrupt.TimerID,
}

// Intc is the local interrupt controller of one hart.
type Intc struct {
	Verbose bool // Set to enable verbose logging.

	hartid int

	initialized atomic.Bool
	handling    atomic.Bool

	mu         sync.Mutex
	mie        uint32 // Enabled lines.
	sources    [interrupt.LocalLines]Source
	table      interrupt.Table
	exceptions [cpu.MaxExceptionCode]cpu.ExceptionHandler
}

var _ interrupt.Controller = (*Intc)(nil)

// NewIntc creates the local interrupt controller of a hart.
func NewIntc(hartid int) (ic *Intc) {
	ic = &Intc{
		hartid: hartid,
	}

	return
}

// HartId returns the hart this controller belongs to.
func (ic *Intc) HartId() int {
	return ic.hartid
}

// Init installs the trap entry. All lines start masked.
func (ic *Intc) Init() {
	if ic.initialized.Swap(true) {
		return
	}

	if ic.Verbose {
		log.Printf("intc: hart %d: init", ic.hartid)
	}
}

// Initialized reports whether Init has been called.
func (ic *Intc) Initialized() bool {
	return ic.initialized.Load()
}

func (ic *Intc) checkId(id int) (err error) {
	if !ic.initialized.Load() {
		err = interrupt.ErrUninitialized
		return
	}

	if id < 0 || id >= interrupt.LocalLines {
		err = interrupt.ErrId(id)
		return
	}

	return
}

// Attach connects the source that drives line id.
func (ic *Intc) Attach(id int, src Source) (err error) {
	if id < 0 || id >= interrupt.LocalLines {
		err = interrupt.ErrId(id)
		return
	}

	ic.mu.Lock()
	ic.sources[id] = src
	ic.mu.Unlock()

	return
}

// RegisterHandler binds a handler to a local line, replacing any previous
// handler.
func (ic *Intc) RegisterHandler(id int, handler interrupt.Handler, data any) (err error) {
	err = ic.checkId(id)
	if err != nil {
		return
	}

	err = ic.table.Set(id, handler, data)

	return
}

// Enable unmasks a local line.
func (ic *Intc) Enable(id int) (err error) {
	err = ic.checkId(id)
	if err != nil {
		return
	}

	ic.mu.Lock()
	ic.mie |= 1 << id
	ic.mu.Unlock()

	if ic.Verbose {
		log.Printf("intc: hart %d: enable %d", ic.hartid, id)
	}

	return
}

// Disable masks a local line.
func (ic *Intc) Disable(id int) (err error) {
	err = ic.checkId(id)
	if err != nil {
		return
	}

	ic.mu.Lock()
	ic.mie &^= 1 << id
	ic.mu.Unlock()

	if ic.Verbose {
		log.Printf("intc: hart %d: disable %d", ic.hartid, id)
	}

	return
}

// Enabled reports whether line id is unmasked.
func (ic *Intc) Enabled(id int) bool {
	if id < 0 || id >= interrupt.LocalLines {
		return false
	}

	ic.mu.Lock()
	defer ic.mu.Unlock()

	return ic.mie&(1<<id) != 0
}

// Mie returns the enabled line mask.
func (ic *Intc) Mie() uint32 {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	return ic.mie
}

// Mip returns the pending line mask, enabled or not.
func (ic *Intc) Mip() (mip uint32) {
	ic.mu.Lock()
	sources := ic.sources
	ic.mu.Unlock()

	for id, src := range sources {
		if src != nil && src.Pending(id) {
			mip |= 1 << id
		}
	}

	return
}

// RegisterException binds a handler to an exception code, replacing any
// previous handler.
func (ic *Intc) RegisterException(ecode cpu.ExceptionCode, handler cpu.ExceptionHandler) (err error) {
	if !ic.initialized.Load() {
		err = cpu.ErrControllerUninitialized
		return
	}

	if ecode < 0 || ecode >= cpu.MaxExceptionCode {
		err = cpu.ErrExceptionCode
		return
	}

	if handler == nil {
		err = cpu.ErrHandlerNil
		return
	}

	ic.mu.Lock()
	ic.exceptions[ecode] = handler
	ic.mu.Unlock()

	if ic.Verbose {
		log.Printf("intc: hart %d: exception %v registered", ic.hartid, ecode)
	}

	return
}

// Handling reports whether the hart is inside a trap handler.
func (ic *Intc) Handling() bool {
	return ic.handling.Load()
}

// Trap delivers exception ecode taken at epc on hart c. It runs the
// registered handler and returns the address execution resumes at.
func (ic *Intc) Trap(c cpu.Cpu, ecode cpu.ExceptionCode, epc uintptr) (resume uintptr, err error) {
	resume = epc

	defer func() {
		if err != nil {
			err = &ErrTrap{HartId: ic.hartid, Code: ecode, Pc: epc, Err: err}
		}
	}()

	if !ic.initialized.Load() {
		err = interrupt.ErrUninitialized
		return
	}

	if ecode < 0 || ecode >= cpu.MaxExceptionCode {
		err = cpu.ErrExceptionCode
		return
	}

	ic.mu.Lock()
	handler := ic.exceptions[ecode]
	ic.mu.Unlock()

	if handler == nil {
		err = ErrUnhandled
		return
	}

	if !ic.handling.CompareAndSwap(false, true) {
		err = ErrNested
		return
	}
	defer ic.handling.Store(false)

	if ic.Verbose {
		log.Printf("intc: hart %d: trap %v at 0x%x", ic.hartid, ecode, epc)
	}

	resume = cpu.Dispatch(c, handler, ecode, epc)

	if ic.Verbose && resume != epc {
		log.Printf("intc: hart %d: resume at 0x%x", ic.hartid, resume)
	}

	return
}

// Poll dispatches every enabled and pending local line to its handler,
// highest priority first, and returns the number of handlers run. Lines
// stay masked while the hart is handling a trap.
func (ic *Intc) Poll() (count int) {
	if !ic.initialized.Load() {
		return
	}

	pending := ic.Mip() & ic.Mie()
	if pending == 0 {
		return
	}

	if !ic.handling.CompareAndSwap(false, true) {
		return
	}
	defer ic.handling.Store(false)

	for _, id := range priority {
		if pending&(1<<id) != 0 {
			pending &^= 1 << id
			if ic.table.Call(id) {
				count++
			}
		}
	}

	for pending != 0 {
		id := bits.TrailingZeros32(pending)
		pending &^= 1 << id
		if ic.table.Call(id) {
			count++
		}
	}

	return
}

// String returns the controller state as a string.
func (ic *Intc) String() string {
	return fmt.Sprintf("mie: %04x mip: %04x", ic.Mie(), ic.Mip())
}
