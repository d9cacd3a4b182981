// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"io"
	"os"
	"time"
)

// DeadlineWriter is the subset of net.Conn a deadline-based Sink needs.
// *net.TCPConn, *net.UnixConn and *net.IPConn all satisfy it.
type DeadlineWriter interface {
	io.Writer
	SetWriteDeadline(t time.Time) error
}

// pollTimeout bounds how long a single PollAccept attempt blocks
// the underlying connection before being treated as Pending. It is
// intentionally short: the point of a deadline sink is to turn a blocking
// socket into a pollable one, not to introduce real latency.
const pollTimeout = time.Millisecond

// deadlineSink adapts a DeadlineWriter into a Sink by racing every write
// against a short deadline and mapping a timeout into iox.ErrWouldBlock, the
// same control-flow signal an in-memory Sink would report for backpressure.
type deadlineSink struct {
	conn DeadlineWriter
}

// NewDeadlineSink wraps conn (e.g. a *net.TCPConn or *net.UnixConn) as a
// Sink, turning a blocking stream socket into one that can report "not ready
// now" without blocking a goroutine, uniformly across TCP and Unix stream
// sockets.
func NewDeadlineSink(conn DeadlineWriter) Sink {
	return &deadlineSink{conn: conn}
}

func (s *deadlineSink) PollAccept(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(pollTimeout)); err != nil {
		return 0, err
	}
	n, err := s.conn.Write(p)
	if err != nil && isTimeout(err) {
		if n > 0 {
			// Report the partial progress; Writer drops n on ErrWouldBlock.
			return n, nil
		}
		return 0, ErrWouldBlock
	}
	return n, err
}

func (s *deadlineSink) PollFlush() error {
	return nil
}

func (s *deadlineSink) PollShutdown() error {
	if c, ok := s.conn.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
