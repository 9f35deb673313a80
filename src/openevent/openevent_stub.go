//go:build !darwin

package openevent

// Listen returns a nil channel: receiving from it blocks forever, which is
// the wanted behavior on platforms that deliver URIs via launch arguments.
func Listen() <-chan string { return nil }
