//go:build !tinygo

package core

// State stands in for the interrupt mask state on regular Go
type State uintptr

// maskDepth counts nested critical sections and maskCount every section
// entered, so host tests can observe them
var (
	maskDepth int
	maskCount int
)

// disableInterrupts enters a critical section (no real masking on regular Go)
func disableInterrupts() State {
	maskDepth++
	maskCount++
	return State(maskDepth)
}

// restoreInterrupts leaves the critical section opened by disableInterrupts
func restoreInterrupts(state State) {
	maskDepth = int(state) - 1
}
