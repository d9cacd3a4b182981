// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "io"

// Sink is a byte-accepting destination with non-blocking backpressure. It is
// the Go expression of the three poll operations a writer drives:
//
//   - PollAccept(p) accepts a prefix of p. It returns (n, nil) with n > 0 on
//     progress, (0, nil) if the sink is at EOF (treated by Writer as
//     ErrSinkZero), (0, iox.ErrWouldBlock) if the sink cannot accept any
//     bytes right now, or (_, err) for any other sink failure, which is
//     passed through to the caller verbatim.
//   - PollFlush forwards any buffered bytes to their destination.
//   - PollShutdown releases the sink's resources. Writer.Shutdown invokes it
//     whenever its own flush succeeds, even when the frame is incomplete, so
//     resources are not leaked by a caller that shuts down prematurely. It
//     is not invoked when that flush fails.
//
// A Sink is exclusively owned by one Writer for the lifetime of a frame;
// sharing a Sink across writers is not supported.
type Sink interface {
	PollAccept(p []byte) (n int, err error)
	PollFlush() error
	PollShutdown() error
}

// Flusher is implemented by io.Writers that buffer internally and need an
// explicit flush, such as bufio.Writer.
type Flusher interface {
	Flush() error
}

// ioSink adapts a plain, blocking io.Writer into a Sink. It never reports
// iox.ErrWouldBlock: Write either makes progress or returns a real error.
type ioSink struct {
	w io.Writer
}

// NewIOSink wraps w as a Sink. If w implements Flusher, PollFlush calls it;
// if w implements io.Closer, PollShutdown calls it. Both are no-ops
// otherwise.
func NewIOSink(w io.Writer) Sink {
	return &ioSink{w: w}
}

func (s *ioSink) PollAccept(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *ioSink) PollFlush() error {
	if f, ok := s.w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s *ioSink) PollShutdown() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
