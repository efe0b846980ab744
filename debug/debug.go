// Package debug holds build-tag gated assertions used across facto components.
package debug

// Assert does nothing if the debug build tag is not provided.
// If the debug build tag is provided, panics if condition is false.
func Assert(condition bool, message ...string) {
	if !Debug {
		return
	}
	if !condition {
		if len(message) > 0 {
			panic(message[0])
		}
		panic("assertion failed")
	}
}
