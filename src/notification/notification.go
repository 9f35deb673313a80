package notification

import "log"

// ShowBlockingError presents a modal error dialog and waits for the user to
// dismiss it. This is the only feedback channel for fatal failures.
func ShowBlockingError(title, message string) {
	log.Printf("%s: %s", title, message)
	showDialog(title, message, true)
}

// ShowWarning presents non-fatal information, e.g. the processing tool wrote
// to its error stream but still exited 0.
func ShowWarning(title, message string) {
	log.Printf("%s: %s", title, message)
	showDialog(title, message, false)
}
