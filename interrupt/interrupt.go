// Package interrupt defines the interrupt controller handle shared by the
// CPU capability surface and the controllers that implement it.
package interrupt

import (
	"fmt"
	"iter"
	"maps"
)

// Local interrupt line ids, as numbered by the machine interrupt pending
// register.
const (
	SoftwareID = 3  // Machine software interrupt (IPI).
	TimerID    = 7  // Machine timer interrupt.
	ExternalID = 11 // Machine external interrupt.

	LocalLines = 16 // Number of local interrupt lines.
)

var _interrupt_defines = map[string]string{
	"SOFTWARE_ID": fmt.Sprintf("%d", SoftwareID),
	"TIMER_ID":    fmt.Sprintf("%d", TimerID),
	"EXTERNAL_ID": fmt.Sprintf("%d", ExternalID),
	"LOCAL_LINES": fmt.Sprintf("%d", LocalLines),
}

// Defines returns an iterator over the interrupt line constants.
func Defines() iter.Seq2[string, string] {
	return maps.All(_interrupt_defines)
}

// Handler is called with the interrupt id and the data given at registration.
type Handler func(id int, data any)

// Controller is a handle to one interrupt domain of a hart.
//
// A controller must be initialized before any interrupt is registered or
// enabled through it, and before any exception handler is registered on the
// hart that owns it.
type Controller interface {
	// Init initializes the controller. Repeated calls are harmless.
	Init()
	// Initialized reports whether Init has been called.
	Initialized() bool
	// RegisterHandler binds a handler to an interrupt id, replacing any
	// previous binding.
	RegisterHandler(id int, handler Handler, data any) error
	// Enable unmasks the interrupt id.
	Enable(id int) error
	// Disable masks the interrupt id.
	Disable(id int) error
}
