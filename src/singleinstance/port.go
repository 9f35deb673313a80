package singleinstance

import (
	"os"
	"strconv"
)

const defaultPort = 49517

// instancePort returns the loopback port keying the instance lock.
// URI_STUB_PORT overrides it (integer, clamped to [1024, 65535]).
func instancePort() int {
	port := defaultPort
	if v := os.Getenv("URI_STUB_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}
	if port < 1024 {
		port = 1024
	}
	if port > 65535 {
		port = 65535
	}
	return port
}
