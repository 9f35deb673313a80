//go:build darwin

package notification

import (
	"log"
	"os/exec"
)

// showDialog uses osascript. Title and message travel through environment
// variables so a crafted URI in the message cannot inject script.
func showDialog(title, message string, isError bool) {
	icon := "caution"
	if isError {
		icon = "stop"
	}
	cmd := exec.Command("/usr/bin/osascript",
		"-e", `set msgTitle to (system attribute "MSG_TITLE")`,
		"-e", `set msgBody to (system attribute "MSG_BODY")`,
		"-e", `tell application "System Events" to display dialog msgBody with title msgTitle buttons {"OK"} default button 1 with icon `+icon)
	cmd.Env = append(cmd.Environ(), "MSG_TITLE="+title, "MSG_BODY="+message)
	if err := cmd.Run(); err != nil {
		log.Printf("notification: osascript failed: %v", err)
	}
}
