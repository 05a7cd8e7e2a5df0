package board

import (
	"io"
	"iter"
	"maps"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mee/clint"
	"github.com/ezrec/mee/cpu"
	"github.com/ezrec/mee/interrupt"
)

// Config describes a board.
type Config struct {
	Harts      int    // Number of harts.
	Timebase   uint64 // mtime ticks per second.
	Frequency  uint64 // Cycle counter ticks per second; 0 if absent.
	MemoryBase uint64 // Physical address of RAM.
	MemorySize int    // Bytes of RAM.
	Verbose    bool   // Set to enable verbose logging.
}

// Default returns the configuration of a two hart board.
func Default() Config {
	return Config{
		Harts:      2,
		Timebase:   32_768,
		Frequency:  16_000_000,
		MemoryBase: 0x8000_0000,
		MemorySize: 64 * 1024,
	}
}

// Validate checks the configuration for consistency.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.Harts <= 0:
		err = &ErrConfig{Key: "harts", Err: ErrValueRange}
	case cfg.Timebase == 0:
		err = &ErrConfig{Key: "timebase", Err: ErrValueRange}
	case cfg.MemorySize < 0:
		err = &ErrConfig{Key: "memory", Err: ErrValueRange}
	}

	return
}

// Defines returns an iterator over every constant visible to board scripts.
func Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, seq := range []iter.Seq2[string, string]{
			interrupt.Defines(),
			cpu.Defines(),
			clint.Defines(),
		} {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

func predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}
	for key, str := range Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Only integer defines are exposed.
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	return
}

// Load runs a starlark board script and returns the resulting configuration.
// Keys the script does not assign keep their Default values.
//
//	harts = 4
//	timebase = 1000000
//	memory = 128 * 1024
func Load(name string, r io.Reader) (cfg Config, err error) {
	cfg = Default()

	src, err := io.ReadAll(r)
	if err != nil {
		return
	}

	thread := starlark.Thread{Name: name}
	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, &thread, name, src, predeclared())
	if err != nil {
		err = &ErrConfig{Key: name, Err: err}
		return
	}

	ints := [](struct {
		key   string
		value func(v uint64)
	}){
		{"harts", func(v uint64) { cfg.Harts = int(v) }},
		{"timebase", func(v uint64) { cfg.Timebase = v }},
		{"frequency", func(v uint64) { cfg.Frequency = v }},
		{"memory_base", func(v uint64) { cfg.MemoryBase = v }},
		{"memory", func(v uint64) { cfg.MemorySize = int(v) }},
	}

	for _, entry := range ints {
		st_value, ok := dict[entry.key]
		if !ok {
			continue
		}
		st_int, ok := st_value.(starlark.Int)
		if !ok {
			err = &ErrConfig{Key: entry.key, Err: ErrValueType}
			return
		}
		value, ok := st_int.Uint64()
		if !ok {
			err = &ErrConfig{Key: entry.key, Err: ErrValueRange}
			return
		}
		entry.value(value)
	}

	if st_value, ok := dict["verbose"]; ok {
		st_bool, ok := st_value.(starlark.Bool)
		if !ok {
			err = &ErrConfig{Key: "verbose", Err: ErrValueType}
			return
		}
		cfg.Verbose = bool(st_bool)
	}

	err = cfg.Validate()

	return
}

// Values returns the configuration as board script assignments.
func (cfg Config) Values() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"harts":       strconv.Itoa(cfg.Harts),
		"timebase":    strconv.FormatUint(cfg.Timebase, 10),
		"frequency":   strconv.FormatUint(cfg.Frequency, 10),
		"memory_base": "0x" + strconv.FormatUint(cfg.MemoryBase, 16),
		"memory":      strconv.Itoa(cfg.MemorySize),
		"verbose":     map[bool]string{true: "True", false: "False"}[cfg.Verbose],
	})
}
