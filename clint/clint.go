// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package clint simulates the RISC-V core-local interruptor: the shared
// real-time counter (mtime), one compare register (mtimecmp) and one software
// interrupt pending bit (msip) per hart.
package clint

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math/bits"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/ezrec/mee/cpu"
	"github.com/ezrec/mee/interrupt"
)

// Register offsets from the CLINT base address.
const (
	MSIP_OFFSET     = 0x0000 // 4 bytes per hart.
	MTIMECMP_OFFSET = 0x4000 // 8 bytes per hart.
	MTIME_OFFSET    = 0xbff8 // Shared by all harts.
	CLINT_SIZE      = 0x10000
)

var _clint_defines = map[string]string{
	"MSIP_OFFSET":     fmt.Sprintf("0x%x", MSIP_OFFSET),
	"MTIMECMP_OFFSET": fmt.Sprintf("0x%x", MTIMECMP_OFFSET),
	"MTIME_OFFSET":    fmt.Sprintf("0x%x", MTIME_OFFSET),
	"CLINT_SIZE":      fmt.Sprintf("0x%x", CLINT_SIZE),
}

// Defines returns an iterator over the CLINT register layout.
func Defines() iter.Seq2[string, string] {
	return maps.All(_clint_defines)
}

// Clint is the simulation of a core-local interruptor shared by all harts.
type Clint struct {
	Verbose bool // Set to enable verbose logging.

	clock    clock.Clock
	timebase uint64 // mtime ticks per second

	initialized atomic.Bool

	mu       sync.Mutex
	epoch    time.Time
	msip     []bool
	mtimecmp []uint64
}

// NewClint creates a CLINT serving harts harts, whose mtime advances at
// timebase ticks per second of clk.
func NewClint(harts int, timebase uint64, clk clock.Clock) (cl *Clint) {
	if clk == nil {
		clk = clock.New()
	}

	cl = &Clint{
		clock:    clk,
		timebase: timebase,
		msip:     make([]bool, harts),
		mtimecmp: make([]uint64, harts),
	}

	cl.reset()

	return
}

func (cl *Clint) reset() {
	clear(cl.msip)
	for n := range cl.mtimecmp {
		cl.mtimecmp[n] = ^uint64(0)
	}
	cl.epoch = cl.clock.Now()
}

// Harts returns the number of harts served.
func (cl *Clint) Harts() int {
	return len(cl.msip)
}

// Timebase returns the mtime frequency in ticks per second.
func (cl *Clint) Timebase() uint64 {
	return cl.timebase
}

// Init starts mtime at zero and masks every timer compare. Only the first
// call has an effect.
func (cl *Clint) Init() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.initialized.Load() {
		return
	}

	cl.reset()
	cl.initialized.Store(true)

	if cl.Verbose {
		log.Printf("clint: init, %d harts, timebase %d", cl.Harts(), cl.timebase)
	}
}

// Initialized reports whether Init has been called.
func (cl *Clint) Initialized() bool {
	return cl.initialized.Load()
}

// Reset returns the CLINT to its uninitialized state.
func (cl *Clint) Reset() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.initialized.Store(false)
	cl.reset()

	if cl.Verbose {
		log.Printf("clint: reset")
	}
}

func (cl *Clint) checkHart(hartid int) (err error) {
	if hartid < 0 || hartid >= len(cl.msip) {
		err = &cpu.ErrHart{HartId: hartid, Err: cpu.ErrHartInvalid}
	}
	return
}

// mtime must be called with mu held.
func (cl *Clint) mtime() uint64 {
	elapsed := cl.clock.Since(cl.epoch)
	if elapsed <= 0 {
		return 0
	}

	hi, lo := bits.Mul64(uint64(elapsed), cl.timebase)
	if hi >= uint64(time.Second) {
		return ^uint64(0)
	}

	ticks, _ := bits.Div64(hi, lo, uint64(time.Second))

	return ticks
}

// Mtime returns the real-time counter, or 0 if the CLINT is uninitialized.
func (cl *Clint) Mtime() uint64 {
	if !cl.initialized.Load() {
		return 0
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	return cl.mtime()
}

// SetMtimecmp sets the timer compare register of a hart. The timer
// interrupt of that hart is pending while mtime >= mtimecmp.
func (cl *Clint) SetMtimecmp(hartid int, value uint64) (err error) {
	if !cl.initialized.Load() {
		err = interrupt.ErrUninitialized
		return
	}

	err = cl.checkHart(hartid)
	if err != nil {
		return
	}

	cl.mu.Lock()
	cl.mtimecmp[hartid] = value
	cl.mu.Unlock()

	if cl.Verbose {
		log.Printf("clint: hart %d: mtimecmp %d", hartid, value)
	}

	return
}

// Mtimecmp returns the timer compare register of a hart.
func (cl *Clint) Mtimecmp(hartid int) (value uint64, err error) {
	err = cl.checkHart(hartid)
	if err != nil {
		return
	}

	cl.mu.Lock()
	value = cl.mtimecmp[hartid]
	cl.mu.Unlock()

	return
}

// SetMsip sets or clears the software interrupt pending bit of a hart.
func (cl *Clint) SetMsip(hartid int, pending bool) (err error) {
	if !cl.initialized.Load() {
		err = interrupt.ErrUninitialized
		return
	}

	err = cl.checkHart(hartid)
	if err != nil {
		return
	}

	cl.mu.Lock()
	cl.msip[hartid] = pending
	cl.mu.Unlock()

	if cl.Verbose {
		log.Printf("clint: hart %d: msip %v", hartid, pending)
	}

	return
}

// Msip returns the software interrupt pending bit of a hart.
func (cl *Clint) Msip(hartid int) (pending bool, err error) {
	if !cl.initialized.Load() {
		err = interrupt.ErrUninitialized
		return
	}

	err = cl.checkHart(hartid)
	if err != nil {
		return
	}

	cl.mu.Lock()
	pending = cl.msip[hartid]
	cl.mu.Unlock()

	return
}

// Pending reports whether the CLINT asserts interrupt line id of a hart.
func (cl *Clint) Pending(hartid int, id int) (pending bool) {
	if !cl.initialized.Load() || cl.checkHart(hartid) != nil {
		return
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	switch id {
	case interrupt.SoftwareID:
		pending = cl.msip[hartid]
	case interrupt.TimerID:
		pending = cl.mtime() >= cl.mtimecmp[hartid]
	}

	return
}

// Port returns the view of the CLINT from one hart. Handlers for the CLINT
// lines are bound on parent, the hart's local interrupt controller.
func (cl *Clint) Port(hartid int, parent interrupt.Controller) (port *Port, err error) {
	err = cl.checkHart(hartid)
	if err != nil {
		return
	}

	if parent == nil {
		err = ErrParentMissing
		return
	}

	port = &Port{
		clint:  cl,
		hartid: hartid,
		parent: parent,
	}

	return
}
