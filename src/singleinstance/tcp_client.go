package singleinstance

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"
)

type tcpClient struct{}

func newTCPClient() Client { return &tcpClient{} }

// Forward pings the resident primary and, if one answers, transmits the URI
// as a single "URI <raw-uri>\n" frame. The primary may still be finishing
// its own startup; the frame sits in the socket buffer until its accept loop
// reads it, so no handshake beyond the PING is needed.
func (c *tcpClient) Forward(ctx context.Context, uri string) (bool, error) {
	deadline := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			deadline = d
		}
	}
	addr := net.JoinHostPort(residentHost, strconv.Itoa(instancePort()))
	if !ping(addr, deadline) {
		return false, nil
	}
	conn, err := net.DialTimeout("tcp", addr, deadline)
	if err != nil {
		return false, nil
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(deadline))
	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(uriPrefix + uri + "\n"); err != nil {
		return true, err
	}
	if err := w.Flush(); err != nil {
		return true, err
	}
	br := bufio.NewReader(conn)
	status, err := br.ReadString('\n')
	if err != nil {
		// Primary may have exited between PING and frame delivery. Accepted
		// race: the frame is dropped and the caller still exits 0.
		return true, nil
	}
	if strings.HasPrefix(status, "ERR") {
		return true, errors.New(strings.TrimSpace(strings.TrimPrefix(status, "ERR")))
	}
	return true, nil
}

func ping(addr string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))
	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(pingRequest); err != nil {
		return false
	}
	if err := w.Flush(); err != nil {
		return false
	}
	br := bufio.NewReader(conn)
	resp, err := br.ReadString('\n')
	return err == nil && resp == pongResponse
}
