//go:build windows

package notification

import (
	"log"

	"golang.org/x/sys/windows"
)

const (
	mbOK          = 0x00000000
	mbIconError   = 0x00000010
	mbIconWarning = 0x00000030
)

func showDialog(title, message string, isError bool) {
	text, err := windows.UTF16PtrFromString(message)
	if err != nil {
		log.Printf("notification: encode message: %v", err)
		return
	}
	caption, err := windows.UTF16PtrFromString(title)
	if err != nil {
		log.Printf("notification: encode title: %v", err)
		return
	}
	style := uint32(mbOK | mbIconError)
	if !isError {
		style = mbOK | mbIconWarning
	}
	if _, err := windows.MessageBox(0, text, caption, style); err != nil {
		log.Printf("notification: MessageBox failed: %v", err)
	}
}
