package activation

import (
	"fmt"
	"strings"
)

// Source identifies which delivery mechanism produced an activation.
type Source int

const (
	// SourceInitialArgs is a URI carried in the launch arguments.
	SourceInitialArgs Source = iota
	// SourceForwarded is a URI relayed by a secondary launch.
	SourceForwarded
	// SourceOSOpenEvent is an open-URI notification from the OS.
	SourceOSOpenEvent
)

func (s Source) String() string {
	switch s {
	case SourceInitialArgs:
		return "initial-args"
	case SourceForwarded:
		return "forwarded"
	case SourceOSOpenEvent:
		return "os-open-event"
	default:
		return "unknown"
	}
}

// Event is one logical activation. Created once, consumed once, never
// persisted.
type Event struct {
	URI    string
	Source Source
}

// FromArgs extracts the URI from launch arguments: the first argument that
// is not a flag. Returns false when the launch carried no URI (the OS may
// start the handler speculatively with no payload).
func FromArgs(args []string) (string, bool) {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return arg, true
	}
	return "", false
}

// Validate performs a sanity check before dispatch: the URI must be
// non-empty and carry a scheme from the accepted set. The string itself is
// never rewritten; the external tool receives it exactly as delivered.
func Validate(uri string, schemes []string) error {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" {
		return fmt.Errorf("not a valid URI: %q", uri)
	}
	for _, s := range schemes {
		if scheme == s {
			return nil
		}
	}
	return fmt.Errorf("unexpected URI scheme %q", scheme)
}
