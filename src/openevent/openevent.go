package openevent

// This package delivers OS "open URI" notifications to a running primary.
// Only macOS uses this mechanism; Windows and Linux hand the URI to a fresh
// process via launch arguments, so their Listen never fires and the
// coordinator's select simply never wakes on this source.
