// Package assert checks caller contracts that the mee packages document as
// undefined behavior. The checks only run in builds tagged meedebug; in other
// builds Enabled is a false constant and the compiler drops them.
package assert

import (
	"fmt"
)

// That panics with the formatted message if cond is false and assertions
// are enabled.
func That(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf("mee: contract violation: "+format, args...))
	}
}
