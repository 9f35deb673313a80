package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	logFileName  = "client_debug.log"
	maxSizeBytes = 5 * 1024 * 1024
)

// Setup routes the standard logger to a debug file in the settings
// directory when enabled. When disabled, logs are discarded so nothing
// leaks onto the streams the processing tool's output is reported through.
func Setup(enable bool, dir string) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if !enable {
		log.SetOutput(io.Discard)
		return
	}
	path := filepath.Join(dir, logFileName)
	rotateIfNeeded(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

// rotateIfNeeded keeps one previous generation.
func rotateIfNeeded(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() < maxSizeBytes {
		return
	}
	_ = os.Rename(path, path+".old")
}
