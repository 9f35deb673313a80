package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"uri-dispatch-stub/src/activation"
	"uri-dispatch-stub/src/config"
	"uri-dispatch-stub/src/dispatch"
	"uri-dispatch-stub/src/eventloop"
	"uri-dispatch-stub/src/logutil"
	"uri-dispatch-stub/src/notification"
	"uri-dispatch-stub/src/openevent"
	"uri-dispatch-stub/src/registrar"
	"uri-dispatch-stub/src/singleinstance"
)

func main() {
	os.Exit(run())
}

func run() int {
	uri, hasURI := activation.FromArgs(os.Args[1:])

	// Settings are a fatal precondition: no registration, no dispatch
	// without them.
	cfg, err := config.Load()
	if err != nil {
		notification.ShowBlockingError("URI Dispatch Error",
			fmt.Sprintf("Settings could not be loaded.\n\n%v", err))
		return 1
	}

	logutil.Setup(cfg.DebugLog, cfg.SettingsDir)
	log.Printf("main: settings loaded from %s", cfg.SettingsDir)

	// Re-register on every launch; the OS may not have completed
	// registration from a prior one. Failures only affect future
	// activations and are swallowed inside.
	registrar.Register(cfg.Schemes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	srv := singleinstance.NewServer()
	if err := srv.Start(ctx); err != nil {
		// Secondary launch: forward the URI to the resident primary and
		// exit 0. A primary that exits mid-forward drops the message; its
		// idle guard resolves the race, not a retry here.
		if hasURI {
			delivered, err := singleinstance.NewClient().Forward(ctx, uri)
			switch {
			case err != nil:
				log.Printf("main: forward failed: %v", err)
			case !delivered:
				log.Printf("main: no resident answered, dropping URI")
			default:
				log.Printf("main: URI forwarded to resident")
			}
		}
		return 0
	}
	defer srv.Close()
	log.Printf("main: primary instance, port %d", srv.Port())

	dispatcher, err := dispatch.New(cfg)
	if err != nil {
		notification.ShowBlockingError("URI Dispatch Error",
			fmt.Sprintf("The processing tool is not available.\n\n%v", err))
		return 1
	}

	loop := eventloop.New(cfg, srv, dispatcher, openevent.Listen(), uri, hasURI)
	return loop.Run(ctx)
}
