// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package board assembles the harts, CLINT and memory of a simulated board
// and builds the hart registry from them.
package board

import (
	"log"

	"github.com/benbjohnson/clock"

	"github.com/ezrec/mee/clint"
	"github.com/ezrec/mee/cpu"
	"github.com/ezrec/mee/riscv"
)

// Board is a simulated multi-hart board.
type Board struct {
	Config

	Clock    clock.Clock
	Clint    *clint.Clint
	Memory   *Memory
	Harts    []*riscv.Hart
	Registry *cpu.Registry
}

// New builds a board. The clock is the wall clock if clk is nil.
func New(cfg Config, clk clock.Clock) (bd *Board, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	if clk == nil {
		clk = clock.New()
	}

	bd = &Board{
		Config: cfg,
		Clock:  clk,
		Clint:  clint.NewClint(cfg.Harts, cfg.Timebase, clk),
		Memory: &Memory{
			Base: cfg.MemoryBase,
			Data: make([]byte, cfg.MemorySize),
		},
	}
	bd.Clint.Verbose = cfg.Verbose

	harts := make([]cpu.Cpu, cfg.Harts)
	for hartid := range cfg.Harts {
		var hart *riscv.Hart
		hart, err = riscv.NewHart(riscv.Config{
			HartId:    hartid,
			Frequency: cfg.Frequency,
			Clock:     clk,
			Clint:     bd.Clint,
			Memory:    bd.Memory,
			Verbose:   cfg.Verbose,
		})
		if err != nil {
			bd = nil
			return
		}
		bd.Harts = append(bd.Harts, hart)
		harts[hartid] = hart
	}

	bd.Registry, err = cpu.NewRegistry(harts...)
	if err != nil {
		bd = nil
		return
	}

	if cfg.Verbose {
		log.Printf("board: %d harts, timebase %d, %d bytes at 0x%x",
			cfg.Harts, cfg.Timebase, cfg.MemorySize, cfg.MemoryBase)
	}

	return
}

// Init initializes the interrupt controllers of every hart.
func (bd *Board) Init() {
	for _, hart := range bd.Harts {
		hart.TimerInterruptController().Init()
	}
}

// Install makes the board's registry the process-wide one.
func (bd *Board) Install() error {
	return cpu.Install(bd.Registry)
}

// Poll dispatches pending interrupts on every hart, and returns the number
// of handlers run.
func (bd *Board) Poll() (count int) {
	for _, hart := range bd.Harts {
		count += hart.Poll()
	}

	return
}
