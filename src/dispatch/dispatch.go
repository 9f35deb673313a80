package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"uri-dispatch-stub/src/config"
)

// ErrToolNotFound means the external processing tool could not be located or
// started at all. Fatal: reported to the user, exit status 1.
var ErrToolNotFound = errors.New("processing tool not found")

// Result captures one completed child invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Dispatcher invokes the external processing tool with a URI. One dispatch
// per process lifetime, never retried.
type Dispatcher struct {
	toolPath string
}

// New resolves the tool binary once, up front. A relative or bare tool name
// is searched against the configured extra paths in order, then PATH.
func New(cfg *config.Config) (*Dispatcher, error) {
	path, err := resolveTool(cfg.ToolPath, cfg.SearchPaths)
	if err != nil {
		return nil, err
	}
	log.Printf("dispatch: tool resolved to %s", path)
	return &Dispatcher{toolPath: path}, nil
}

// Run executes `tool <uri>` synchronously, draining both output streams
// before returning. A non-zero child exit is not an error here: the caller
// propagates Result.ExitCode. The error return covers only failure to start
// the child.
func (d *Dispatcher) Run(ctx context.Context, uri string) (Result, error) {
	log.Printf("dispatch: invoking %s with URI", d.toolPath)
	cmd := exec.CommandContext(ctx, d.toolPath, uri)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			log.Printf("dispatch: tool exited with status %d", res.ExitCode)
			return res, nil
		}
		return res, fmt.Errorf("%w: %s: %v", ErrToolNotFound, d.toolPath, err)
	}
	log.Printf("dispatch: tool exited cleanly, stdout=%dB stderr=%dB", stdout.Len(), stderr.Len())
	return res, nil
}

// resolveTool locates the tool binary. Absolute paths and paths containing a
// separator are checked directly; bare names are searched in order across
// the extra search paths, then the environment PATH.
func resolveTool(tool string, searchPaths []string) (string, error) {
	if filepath.IsAbs(tool) || filepath.Base(tool) != tool {
		if _, err := os.Stat(tool); err != nil {
			return "", fmt.Errorf("%w: %s", ErrToolNotFound, tool)
		}
		return tool, nil
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, tool)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	if path, err := exec.LookPath(tool); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrToolNotFound, tool)
}
