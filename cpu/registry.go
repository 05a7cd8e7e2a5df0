package cpu

import (
	"iter"
	"sync/atomic"
)

// Registry resolves hart ids to their Cpu handles. A Registry is immutable
// once built.
type Registry struct {
	harts []Cpu
}

// NewRegistry builds a registry where each hart's id is its position.
func NewRegistry(harts ...Cpu) (reg *Registry, err error) {
	if len(harts) == 0 {
		err = ErrRegistryEmpty
		return
	}

	for hartid, hart := range harts {
		if hart == nil {
			err = &ErrHart{HartId: hartid, Err: ErrHartMissing}
			return
		}
	}

	reg = &Registry{
		harts: append([]Cpu(nil), harts...),
	}

	return
}

// Len returns the number of harts.
func (reg *Registry) Len() int {
	return len(reg.harts)
}

// Lookup returns the handle for hartid.
func (reg *Registry) Lookup(hartid int) (hart Cpu, err error) {
	if hartid < 0 || hartid >= len(reg.harts) {
		err = &ErrHart{HartId: hartid, Err: ErrHartInvalid}
		return
	}

	hart = reg.harts[hartid]

	return
}

// Get returns the handle for hartid. An invalid id is a configuration
// mismatch between firmware and hardware, so Get panics.
func (reg *Registry) Get(hartid int) Cpu {
	hart, err := reg.Lookup(hartid)
	if err != nil {
		panic(err)
	}

	return hart
}

// All returns an iterator over the hart ids and their handles.
func (reg *Registry) All() iter.Seq2[int, Cpu] {
	return func(yield func(int, Cpu) bool) {
		for hartid, hart := range reg.harts {
			if !yield(hartid, hart) {
				return
			}
		}
	}
}

var installed atomic.Pointer[Registry]

// Install makes reg the process-wide registry used by Get. It may only be
// called once, during boot, before any hart is addressed.
func Install(reg *Registry) (err error) {
	if reg == nil {
		err = ErrRegistryEmpty
		return
	}

	if !installed.CompareAndSwap(nil, reg) {
		err = ErrRegistryInstalled
		return
	}

	return
}

// Installed returns the process-wide registry, or nil before Install.
func Installed() *Registry {
	return installed.Load()
}

// Get returns the handle for hartid from the process-wide registry.
// It panics if no registry is installed or hartid is invalid.
func Get(hartid int) Cpu {
	reg := installed.Load()
	if reg == nil {
		panic(ErrRegistryMissing)
	}

	return reg.Get(hartid)
}
