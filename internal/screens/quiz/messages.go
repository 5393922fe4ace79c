package quiz

// advanceMsg fires once the chosen option has been shown for the configured
// delay. gen ties it to the selection that scheduled it.
type advanceMsg struct {
	gen int
}
