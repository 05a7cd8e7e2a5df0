//go:build meedebug

package assert

// Enabled reports whether contract assertions are compiled in.
const Enabled = true
