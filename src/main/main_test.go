//go:build linux

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uri-dispatch-stub/src/config"
	"uri-dispatch-stub/src/singleinstance"
)

const testURI = "ida://test.i64/path?offset=0x100003f10&hash=fea074789acc4a748d2ba0c6d82a0f8f"

func isolate(t *testing.T, port string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("URI_STUB_PORT", port)
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"uri-dispatch-stub"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func writeSettings(t *testing.T, contents string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFileName), []byte(contents), 0644))
	t.Setenv(config.SettingsDirEnvVar, dir)
}

func TestRunMissingSettingsExitsOne(t *testing.T) {
	isolate(t, "49630")
	t.Setenv(config.SettingsDirEnvVar, t.TempDir())
	withArgs(t, testURI)

	assert.Equal(t, 1, run())
}

func TestRunSecondaryForwardsAndExitsZero(t *testing.T) {
	isolate(t, "49631")
	writeSettings(t, "PROCESSING_TOOL_PATH=resolver\n")
	withArgs(t, testURI)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Pose as the resident primary so run() takes the secondary path.
	resident := singleinstance.NewServer()
	require.NoError(t, resident.Start(ctx))
	defer resident.Close()

	codeCh := make(chan int, 1)
	go func() { codeCh <- run() }()

	conn, err := resident.Next(ctx)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, testURI, conn.Request().URI)
	require.NoError(t, conn.RespondSuccess())

	select {
	case code := <-codeCh:
		assert.Equal(t, 0, code)
	case <-ctx.Done():
		t.Fatal("secondary did not exit after forwarding")
	}
}

func TestRunPrimaryIdleTimeoutExitsZero(t *testing.T) {
	isolate(t, "49632")
	dir := t.TempDir()
	tool := filepath.Join(dir, "resolver")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\nexit 0\n"), 0755))
	writeSettings(t, "PROCESSING_TOOL_PATH="+tool+"\nIDLE_TIMEOUT_MS=80\n")
	withArgs(t)

	start := time.Now()
	assert.Equal(t, 0, run())
	assert.Less(t, time.Since(start), 5*time.Second)
}
