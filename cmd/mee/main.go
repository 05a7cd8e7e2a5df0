// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ezrec/mee/board"
	"github.com/ezrec/mee/console"
	"github.com/ezrec/mee/cpu"
)

func main() {
	var script string
	var verbose bool
	var echo bool
	var tty string
	var duration time.Duration
	var ticks uint64

	flag.StringVar(&script, "b", "", ".star board description to use")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&echo, "i", false, "Echo console input lines")
	flag.StringVar(&tty, "t", "", "Terminal device for console input, instead of stdin")
	flag.DurationVar(&duration, "d", time.Second, "Time to run the timer interrupts")
	flag.Uint64Var(&ticks, "r", 4, "Timer interrupts per second")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := board.Default()
	if len(script) != 0 {
		inf, err := os.Open(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		cfg, err = board.Load(script, inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	}
	cfg.Verbose = cfg.Verbose || verbose

	if cfg.Verbose {
		for key, value := range cfg.Values() {
			log.Printf("board: %v = %v", key, value)
		}
	}

	bd, err := board.New(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}

	err = bd.Install()
	if err != nil {
		log.Fatal(err)
	}

	bd.Init()

	err = setupHarts(cfg, ticks)
	if err != nil {
		log.Fatal(err)
	}

	err = sendIPIs(bd)
	if err != nil {
		log.Fatal(err)
	}

	err = breakpoints(bd)
	if err != nil {
		log.Fatal(err)
	}

	if echo {
		err = echoConsole(tty)
		if err != nil {
			log.Fatal(err)
		}
	}

	for deadline := time.Now().Add(duration); time.Now().Before(deadline); {
		bd.Poll()
		time.Sleep(time.Millisecond)
	}

	if cfg.Verbose {
		for _, hart := range bd.Harts {
			fmt.Print(hart.String())
		}
	}
}

// setupHarts binds the exception, software and timer handlers of every hart.
func setupHarts(cfg board.Config, ticks uint64) (err error) {
	period := cfg.Timebase
	if ticks > 0 {
		period = max(1, cfg.Timebase/ticks)
	}

	for hartid := range cfg.Harts {
		hart := cpu.Get(hartid)

		err = hart.RegisterException(cpu.ECODE_BREAKPOINT, func(ctx *cpu.ExceptionContext, ecode cpu.ExceptionCode) {
			epc := ctx.PC()
			if err := ctx.Skip(); err != nil {
				log.Printf("hart %d: %v: %v", hartid, ecode, err)
				return
			}
			fmt.Printf("hart %d: %v at 0x%x, resume at 0x%x\n", hartid, ecode, epc, ctx.PC())
		})
		if err != nil {
			return
		}

		sw := hart.SoftwareInterruptController()
		err = sw.RegisterHandler(hart.SoftwareInterruptID(), func(id int, data any) {
			fmt.Printf("hart %d: ipi\n", hartid)
			if err := hart.ClearIPI(hartid); err != nil {
				log.Printf("hart %d: %v", hartid, err)
			}
		}, nil)
		if err != nil {
			return
		}
		err = sw.Enable(hart.SoftwareInterruptID())
		if err != nil {
			return
		}

		tmr := hart.TimerInterruptController()
		err = tmr.RegisterHandler(hart.TimerInterruptID(), func(id int, data any) {
			now := hart.Mtime()
			cycles, _ := hart.Timer(hartid)
			fmt.Printf("hart %d: tick mtime %d cycles %d\n", hartid, now, cycles)
			if err := hart.SetMtimecmp(now + period); err != nil {
				log.Printf("hart %d: %v", hartid, err)
			}
		}, nil)
		if err != nil {
			return
		}

		err = hart.SetMtimecmp(hart.Mtime() + period)
		if err != nil {
			return
		}
		err = tmr.Enable(hart.TimerInterruptID())
		if err != nil {
			return
		}
	}

	return
}

// sendIPIs has hart 0 interrupt every other hart.
func sendIPIs(bd *board.Board) (err error) {
	boot := cpu.Get(0)
	for hartid := 1; hartid < bd.Registry.Len(); hartid++ {
		err = boot.SetIPI(hartid)
		if err != nil {
			return
		}
	}

	bd.Poll()

	return
}

// breakpoints traps an uncompressed then a compressed ebreak on every hart.
func breakpoints(bd *board.Board) (err error) {
	// ebreak, c.ebreak
	code := []byte{0x73, 0x00, 0x10, 0x00, 0x02, 0x90}
	_, err = bd.Memory.WriteAt(code, int64(bd.MemoryBase))
	if err != nil {
		return
	}

	for _, hart := range bd.Harts {
		pc := uintptr(bd.MemoryBase)
		for range 2 {
			pc, err = hart.Trap(cpu.ECODE_BREAKPOINT, pc)
			if err != nil {
				return
			}
		}
	}

	return
}

// echoConsole echoes console input lines until end of input.
func echoConsole(name string) (err error) {
	var tty console.TTY = console.NewStream(os.Stdin)
	if len(name) != 0 {
		var tm *console.Terminal
		tm, err = console.OpenTerminal(name)
		if err != nil {
			return
		}
		defer tm.Close()
		tty = tm
	}

	rd := console.NewReader(tty)
	line := make([]byte, 256)
	for {
		var n int
		n, err = rd.Read(line)
		if n > 0 {
			fmt.Printf("%d: %s", cpu.Get(0).Mtime(), line[:n])
		}
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}
