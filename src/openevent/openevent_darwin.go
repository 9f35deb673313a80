//go:build darwin

package openevent

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

void startOpenEventPump(void);
*/
import "C"

import "runtime"

var uris = make(chan string, 4)

//export goDeliverOpenURI
func goDeliverOpenURI(cstr *C.char) {
	select {
	case uris <- C.GoString(cstr):
	default:
		// Coordinator is one-shot; extra events are dropped.
	}
}

// Listen starts the Apple Event pump on its own locked OS thread and returns
// the channel that open-URI events arrive on.
func Listen() <-chan string {
	go func() {
		runtime.LockOSThread()
		C.startOpenEventPump()
	}()
	return uris
}
