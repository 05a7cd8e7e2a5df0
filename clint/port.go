package clint

import (
	"github.com/ezrec/mee/interrupt"
)

// Port is the timer and software interrupt domain of one hart.
type Port struct {
	clint  *Clint
	hartid int
	parent interrupt.Controller
}

var _ interrupt.Controller = (*Port)(nil)

// HartId returns the hart this port serves.
func (port *Port) HartId() int {
	return port.hartid
}

// Clint returns the shared CLINT.
func (port *Port) Clint() *Clint {
	return port.clint
}

// Init initializes the hart's local controller, then the CLINT.
func (port *Port) Init() {
	port.parent.Init()
	port.clint.Init()
}

// Initialized reports whether both the CLINT and the hart's local controller
// have been initialized.
func (port *Port) Initialized() bool {
	return port.clint.Initialized() && port.parent.Initialized()
}

func (port *Port) checkId(id int) (err error) {
	if !port.Initialized() {
		err = interrupt.ErrUninitialized
		return
	}

	if id != interrupt.SoftwareID && id != interrupt.TimerID {
		err = interrupt.ErrId(id)
		return
	}

	return
}

// RegisterHandler binds a handler to the software or timer line.
func (port *Port) RegisterHandler(id int, handler interrupt.Handler, data any) (err error) {
	err = port.checkId(id)
	if err != nil {
		return
	}

	err = port.parent.RegisterHandler(id, handler, data)

	return
}

// Enable unmasks the software or timer line.
func (port *Port) Enable(id int) (err error) {
	err = port.checkId(id)
	if err != nil {
		return
	}

	err = port.parent.Enable(id)

	return
}

// Disable masks the software or timer line.
func (port *Port) Disable(id int) (err error) {
	err = port.checkId(id)
	if err != nil {
		return
	}

	err = port.parent.Disable(id)

	return
}

// Pending reports whether the CLINT asserts line id on this hart.
func (port *Port) Pending(id int) bool {
	return port.clint.Pending(port.hartid, id)
}
