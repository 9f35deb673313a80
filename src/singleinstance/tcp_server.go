package singleinstance

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"
)

const (
	residentHost = "127.0.0.1"
	pingRequest  = "PING\n"
	pongResponse = "PONG\n"
	uriPrefix    = "URI "
)

// tcpServer implements Server over TCP loopback.
type tcpServer struct {
	lis      net.Listener
	incoming chan *tcpConn
	port     int
}

func newTCPServer() Server { return &tcpServer{incoming: make(chan *tcpConn, 8)} }

// Start binds the instance port. A bind failure means a live primary already
// holds it.
func (s *tcpServer) Start(ctx context.Context) error {
	if s.lis != nil {
		return nil
	}
	port := instancePort()
	addr := fmt.Sprintf("%s:%d", residentHost, port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("singleinstance: port %d busy, resident already exists", port)
		return ErrAlreadyRunning
	}
	s.lis = lis
	s.port = port
	log.Printf("singleinstance: listening on %s", addr)
	go s.acceptLoop(ctx)
	return nil
}

// Port returns the bound port (0 if not started).
func (s *tcpServer) Port() int { return s.port }

func (s *tcpServer) acceptLoop(ctx context.Context) {
	for {
		c, err := s.lis.Accept()
		if err != nil {
			return
		}
		remote := c.RemoteAddr().String()
		_ = c.SetDeadline(time.Now().Add(3 * time.Second))
		br := bufio.NewReader(c)
		line, _ := br.ReadString('\n')
		bw := bufio.NewWriter(c)
		if line == pingRequest {
			log.Printf("singleinstance: PING from %s -> PONG", remote)
			_, _ = bw.WriteString(pongResponse)
			_ = bw.Flush()
			_ = c.Close()
			continue
		}
		// Frame is "URI <raw-uri>\n". Only the single trailing newline of
		// the frame is stripped; the URI itself is passed through untouched.
		if !strings.HasPrefix(line, uriPrefix) {
			log.Printf("singleinstance: malformed frame from %s", remote)
			_, _ = bw.WriteString("ERR malformed frame\n")
			_ = bw.Flush()
			_ = c.Close()
			continue
		}
		uri := strings.TrimSuffix(line[len(uriPrefix):], "\n")
		_ = c.SetDeadline(time.Time{})
		log.Printf("singleinstance: forwarded URI from %s", remote)
		select {
		case s.incoming <- &tcpConn{c: c, r: Request{URI: uri}, w: bw}:
		case <-ctx.Done():
			_ = c.Close()
			return
		}
	}
}

func (s *tcpServer) Next(ctx context.Context) (Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case tc := <-s.incoming:
		return tc, nil
	}
}

func (s *tcpServer) Close() error {
	if s.lis != nil {
		_ = s.lis.Close()
		s.lis = nil
	}
	return nil
}

type tcpConn struct {
	c net.Conn
	r Request
	w *bufio.Writer
}

func (tc *tcpConn) Request() Request { return tc.r }

func (tc *tcpConn) RespondSuccess() error {
	if _, err := tc.w.WriteString("ACK\n"); err != nil {
		return err
	}
	return tc.w.Flush()
}

func (tc *tcpConn) RespondError(msg string) error {
	if _, err := tc.w.WriteString("ERR " + msg + "\n"); err != nil {
		return err
	}
	return tc.w.Flush()
}

func (tc *tcpConn) Close() error { return tc.c.Close() }
