package eventloop

import (
	"bytes"
	"context"
	"log"
	"time"

	"uri-dispatch-stub/src/activation"
	"uri-dispatch-stub/src/config"
	"uri-dispatch-stub/src/dispatch"
	"uri-dispatch-stub/src/lifetime"
	"uri-dispatch-stub/src/notification"
	"uri-dispatch-stub/src/singleinstance"
)

// Runner executes the external processing tool. Satisfied by
// *dispatch.Dispatcher; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, uri string) (dispatch.Result, error)
}

// Loop is the single-threaded coordinator for a primary instance. It joins
// the three activation sources and the idle guard, acts on the first source
// to fire, and turns the dispatch outcome into the process exit code.
type Loop struct {
	srv        singleinstance.Server
	runner     Runner
	schemes    []string
	idle       time.Duration
	openCh     <-chan string
	initialURI string
	hasInitial bool
}

// New wires a loop for one process lifetime.
func New(cfg *config.Config, srv singleinstance.Server, runner Runner, openCh <-chan string, initialURI string, hasInitial bool) *Loop {
	return &Loop{
		srv:        srv,
		runner:     runner,
		schemes:    cfg.Schemes,
		idle:       time.Duration(cfg.IdleTimeoutMS) * time.Millisecond,
		openCh:     openCh,
		initialURI: initialURI,
		hasInitial: hasInitial,
	}
}

// Run blocks until one activation has been dispatched or the idle window
// elapses, and returns the process exit code. Exactly one activation is
// acted on; anything arriving after dispatch begins is ignored for the rest
// of this process lifetime.
func (l *Loop) Run(ctx context.Context) int {
	guard := lifetime.Arm(l.idle)

	if l.hasInitial {
		guard.Cancel()
		return l.dispatch(ctx, activation.Event{URI: l.initialURI, Source: activation.SourceInitialArgs})
	}

	// Accept loop in background; forwarded requests surface on reqCh.
	reqCh := make(chan singleinstance.Conn, 4)
	go func() {
		for {
			conn, err := l.srv.Next(ctx)
			if err != nil {
				close(reqCh)
				return
			}
			reqCh <- conn
		}
	}()

	select {
	case <-ctx.Done():
		guard.Cancel()
		log.Printf("eventloop: cancelled before activation")
		return 0
	case <-guard.Expired():
		log.Printf("eventloop: no activation within %s, exiting idle", l.idle)
		return 0
	case conn, ok := <-reqCh:
		guard.Cancel()
		if !ok {
			return 0
		}
		ev := activation.Event{URI: conn.Request().URI, Source: activation.SourceForwarded}
		_ = conn.RespondSuccess()
		_ = conn.Close()
		return l.dispatch(ctx, ev)
	case uri := <-l.openCh:
		guard.Cancel()
		return l.dispatch(ctx, activation.Event{URI: uri, Source: activation.SourceOSOpenEvent})
	}
}

// dispatch runs the tool once and maps the outcome to an exit code. The
// tool's own exit code is authoritative; stderr with a zero exit is a
// warning only.
func (l *Loop) dispatch(ctx context.Context, ev activation.Event) int {
	log.Printf("eventloop: activation via %s", ev.Source)

	if err := activation.Validate(ev.URI, l.schemes); err != nil {
		notification.ShowBlockingError("Invalid URI", err.Error())
		return 1
	}

	res, err := l.runner.Run(ctx, ev.URI)
	if err != nil {
		notification.ShowBlockingError("Dispatch failed", err.Error())
		return 1
	}

	stderr := bytes.TrimSpace(res.Stderr)
	if res.ExitCode != 0 {
		msg := string(stderr)
		if msg == "" {
			msg = "processing tool reported a failure"
		}
		notification.ShowBlockingError("Processing tool failed", msg)
		return res.ExitCode
	}
	if len(stderr) > 0 {
		notification.ShowWarning("Processing tool warning", string(stderr))
	}
	return 0
}
