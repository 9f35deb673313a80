//go:build linux

package eventloop

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uri-dispatch-stub/src/config"
	"uri-dispatch-stub/src/dispatch"
	"uri-dispatch-stub/src/singleinstance"
)

const testURI = "ida://test.i64/path?offset=0x100003f10&hash=fea074789acc4a748d2ba0c6d82a0f8f"

type fakeRunner struct {
	mu     sync.Mutex
	uris   []string
	result dispatch.Result
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, uri string) (dispatch.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uris = append(f.uris, uri)
	return f.result, f.err
}

func (f *fakeRunner) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uris...)
}

type idleServer struct{}

func (idleServer) Start(ctx context.Context) error { return nil }
func (idleServer) Port() int                       { return 0 }
func (idleServer) Next(ctx context.Context) (singleinstance.Conn, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (idleServer) Close() error { return nil }

func testConfig(idleMS int) *config.Config {
	return &config.Config{
		ToolPath:      "resolver",
		Schemes:       []string{"ida", "disas"},
		IdleTimeoutMS: idleMS,
	}
}

func suppressDialogs(t *testing.T) {
	t.Helper()
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
}

func TestIdleTimeoutExitsZeroWithoutDispatch(t *testing.T) {
	runner := &fakeRunner{}
	loop := New(testConfig(50), idleServer{}, runner, nil, "", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	start := time.Now()
	code := loop.Run(ctx)

	assert.Equal(t, 0, code)
	assert.Empty(t, runner.calls())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestInitialArgsDispatchesExactURI(t *testing.T) {
	runner := &fakeRunner{}
	loop := New(testConfig(500), idleServer{}, runner, nil, testURI, true)

	code := loop.Run(context.Background())

	assert.Equal(t, 0, code)
	require.Len(t, runner.calls(), 1)
	assert.Equal(t, testURI, runner.calls()[0])
}

func TestChildExitCodePropagates(t *testing.T) {
	suppressDialogs(t)
	runner := &fakeRunner{result: dispatch.Result{ExitCode: 7, Stderr: []byte("not found")}}
	loop := New(testConfig(500), idleServer{}, runner, nil, testURI, true)

	assert.Equal(t, 7, loop.Run(context.Background()))
}

func TestChildStderrWithZeroExitStaysZero(t *testing.T) {
	suppressDialogs(t)
	runner := &fakeRunner{result: dispatch.Result{ExitCode: 0, Stderr: []byte("warning: slow endpoint\n")}}
	loop := New(testConfig(500), idleServer{}, runner, nil, testURI, true)

	assert.Equal(t, 0, loop.Run(context.Background()))
}

func TestStartFailureExitsOne(t *testing.T) {
	suppressDialogs(t)
	runner := &fakeRunner{err: dispatch.ErrToolNotFound}
	loop := New(testConfig(500), idleServer{}, runner, nil, testURI, true)

	assert.Equal(t, 1, loop.Run(context.Background()))
}

func TestInvalidURIRejectedBeforeDispatch(t *testing.T) {
	suppressDialogs(t)
	runner := &fakeRunner{}
	loop := New(testConfig(500), idleServer{}, runner, nil, "http://not-ours", true)

	assert.Equal(t, 1, loop.Run(context.Background()))
	assert.Empty(t, runner.calls())
}

func TestForwardedURIDispatchesExactString(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	t.Setenv("URI_STUB_PORT", strconv.Itoa(49620))

	srv := singleinstance.NewServer()
	if err := srv.Start(ctx); err != nil {
		t.Skipf("loopback port unavailable: %v", err)
	}
	defer srv.Close()

	runner := &fakeRunner{}
	loop := New(testConfig(3000), srv, runner, nil, "", false)

	codeCh := make(chan int, 1)
	go func() { codeCh <- loop.Run(ctx) }()

	delivered, err := singleinstance.NewClient().Forward(ctx, testURI)
	require.NoError(t, err)
	require.True(t, delivered)

	select {
	case code := <-codeCh:
		assert.Equal(t, 0, code)
	case <-ctx.Done():
		t.Fatal("loop did not finish after forward")
	}
	require.Len(t, runner.calls(), 1)
	assert.Equal(t, testURI, runner.calls()[0])
}

func TestOSOpenEventDispatchesExactString(t *testing.T) {
	openCh := make(chan string, 1)
	openCh <- testURI

	runner := &fakeRunner{}
	loop := New(testConfig(3000), idleServer{}, runner, openCh, "", false)

	code := loop.Run(context.Background())

	assert.Equal(t, 0, code)
	require.Len(t, runner.calls(), 1)
	assert.Equal(t, testURI, runner.calls()[0])
}
