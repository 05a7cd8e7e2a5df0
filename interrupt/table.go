package interrupt

import (
	"sync"
)

type binding struct {
	handler Handler
	data    any
}

// Table holds the handler bindings of an interrupt domain.
// The zero value is an empty table of LocalLines entries.
type Table struct {
	mu       sync.RWMutex
	bindings [LocalLines]binding
}

// Set binds a handler to an id, replacing any previous binding.
func (tb *Table) Set(id int, handler Handler, data any) (err error) {
	if id < 0 || id >= LocalLines {
		err = ErrId(id)
		return
	}

	if handler == nil {
		err = ErrHandlerNil
		return
	}

	tb.mu.Lock()
	tb.bindings[id] = binding{handler: handler, data: data}
	tb.mu.Unlock()

	return
}

// Clear removes the binding for an id.
func (tb *Table) Clear(id int) {
	if id < 0 || id >= LocalLines {
		return
	}

	tb.mu.Lock()
	tb.bindings[id] = binding{}
	tb.mu.Unlock()
}

// Bound reports whether a handler is bound to id.
func (tb *Table) Bound(id int) bool {
	if id < 0 || id >= LocalLines {
		return false
	}

	tb.mu.RLock()
	defer tb.mu.RUnlock()

	return tb.bindings[id].handler != nil
}

// Call invokes the handler bound to id, if any.
func (tb *Table) Call(id int) (called bool) {
	if id < 0 || id >= LocalLines {
		return
	}

	tb.mu.RLock()
	bind := tb.bindings[id]
	tb.mu.RUnlock()

	if bind.handler == nil {
		return
	}

	bind.handler(id, bind.data)
	called = true

	return
}
