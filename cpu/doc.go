// Package cpu implements the per-hart capability surface of a multi-hart
// RISC-V processor.
//
// A hart is addressed through a Cpu handle obtained from a Registry. The Cpu
// interface is the capability table: cycle and real-time counters, the timer
// compare register, the timer, software and local interrupt controllers,
// inter-processor interrupts, and exception handler registration. Each hart
// family supplies one implementation of the interface, selected when the
// registry is built; call sites never change when a new family is added.
//
// Exception handlers receive an ExceptionContext token that is only valid
// for the duration of the handler call. The exception program counter is
// read and written through that token.
package cpu
