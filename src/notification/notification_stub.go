//go:build !windows && !darwin

package notification

import (
	"log"
	"os"
	"os/exec"
)

// showDialog tries zenity when a display is available, otherwise the message
// stays on the log only (headless session, nothing to block on).
func showDialog(title, message string, isError bool) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return
	}
	kind := "--warning"
	if isError {
		kind = "--error"
	}
	cmd := exec.Command("zenity", kind, "--title", title, "--text", message)
	if err := cmd.Run(); err != nil {
		log.Printf("notification: zenity failed: %v", err)
	}
}
