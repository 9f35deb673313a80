package registrar

import (
	"log"
	"os"
)

// Register tells the OS that this executable handles the given URI schemes.
// It runs on every launch: registration from a prior launch may not have
// completed, and re-registering is harmless. Failures are logged and
// swallowed since they only affect future activations, never the current
// one.
func Register(schemes []string) {
	exe, err := os.Executable()
	if err != nil {
		log.Printf("registrar: cannot resolve executable path: %v", err)
		return
	}
	for _, scheme := range schemes {
		if err := registerScheme(scheme, exe); err != nil {
			log.Printf("registrar: register %s://: %v", scheme, err)
			continue
		}
		log.Printf("registrar: %s:// -> %s", scheme, exe)
	}
}
