// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
	"runtime"
	"time"
)

// phase identifies which of the three framing stages a Writer currently
// occupies. Transitions are monotone: phaseSize -> phasePayload ->
// phasePadding, never backwards.
type phase uint8

const (
	phaseSize phase = iota
	phasePayload
	phasePadding
)

func (p phase) String() string {
	switch p {
	case phaseSize:
		return "size"
	case phasePayload:
		return "payload"
	case phasePadding:
		return "padding"
	default:
		return "unknown"
	}
}

// Phase is the observable state of a Writer at a suspension point: which
// stage it occupies and how many bytes of that stage have been flushed to
// the sink.
type Phase struct {
	Kind string
	Pos  uint64
}

// Writer streams a single bytes wire packet to a Sink: an 8-byte
// little-endian length prefix, the payload bytes supplied across one or more
// Write calls, and zero padding out to the next 8-byte boundary.
//
// A Writer is constructed bound to one Sink and one PayloadLength, both
// fixed for its lifetime. It must not be reused after a Sink error: its
// state is unspecified at that point.
type Writer struct {
	sink       Sink
	payloadLen uint64
	retryDelay time.Duration

	phase      phase
	sizePos    uint64 // bytes of the size prefix flushed so far, in [0, 8]; 8 moves the writer to phasePayload
	payloadPos uint64 // bytes of payload flushed so far, in [0, payloadLen]
	padPos     uint64 // bytes of padding flushed so far, in [0, paddingLen]

	sizeBuf [lenSize]byte
	padBuf  [lenSize - 1]byte // padding is always < 8 bytes
}

// New constructs a Writer bound to sink, promising to write exactly
// payloadLen payload bytes. No I/O happens until the first Write, Flush, or
// Shutdown call.
func New(sink Sink, payloadLen uint64, opts ...Option) *Writer {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	w := &Writer{
		sink:       sink,
		payloadLen: payloadLen,
		retryDelay: o.RetryDelay,
	}
	binary.LittleEndian.PutUint64(w.sizeBuf[:], payloadLen)
	return w
}

// NewIOWriter is a convenience constructor wrapping a plain io.Writer as the
// Sink, for the common case of writing into an in-memory buffer, a file, or
// anything else that never needs to report backpressure.
func NewIOWriter(w io.Writer, payloadLen uint64, opts ...Option) *Writer {
	return New(NewIOSink(w), payloadLen, opts...)
}

// State reports the writer's current phase and position within it, useful
// for tests asserting the invariants in the framing state machine.
func (w *Writer) State() Phase {
	switch w.phase {
	case phaseSize:
		return Phase{Kind: "size", Pos: w.sizePos}
	case phasePayload:
		return Phase{Kind: "payload", Pos: w.payloadPos}
	default:
		return Phase{Kind: "padding", Pos: w.padPos}
	}
}

// waitOnceOnWouldBlock applies the writer's retry policy after a Pending
// signal from the sink. It reports whether the caller should retry.
func (w *Writer) waitOnceOnWouldBlock() bool {
	if w.retryDelay < 0 {
		return false
	}
	if w.retryDelay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(w.retryDelay)
	return true
}

// accept drives exactly one logical PollAccept attempt, applying the retry
// policy across any number of iox.ErrWouldBlock responses. It returns as
// soon as the sink makes real progress (n > 0, nil error), reports a broken
// pipe (ErrSinkZero) on (0, nil), propagates any other sink error verbatim,
// or returns ErrWouldBlock once the retry policy gives up.
func (w *Writer) accept(p []byte) (int, error) {
	for {
		n, err := w.sink.PollAccept(p)
		if err == nil {
			if n == 0 {
				return 0, ErrSinkZero
			}
			return n, nil
		}
		if err != ErrWouldBlock {
			return n, err
		}
		if !w.waitOnceOnWouldBlock() {
			return 0, ErrWouldBlock
		}
	}
}

// driveSize pushes the remaining bytes of the size prefix to the sink,
// transitioning to phasePayload once all 8 bytes have been accepted. It is a
// no-op once the writer has left phaseSize.
func (w *Writer) driveSize() error {
	for w.phase == phaseSize {
		if w.sizePos == lenSize {
			w.phase = phasePayload
			return nil
		}
		n, err := w.accept(w.sizeBuf[w.sizePos:])
		if err != nil {
			return err
		}
		w.sizePos += uint64(n)
	}
	return nil
}

// Write forwards the payload bytes in buf. It returns the number of bytes
// accepted by the sink in this call (which may be fewer than len(buf)).
//
// The excess-payload check is evaluated against the writer's single running
// payload counter regardless of the current phase: this is what makes it
// correctly reject any non-empty write once PaddingPhase has been reached,
// without a separate case for that phase.
func (w *Writer) Write(buf []byte) (int, error) {
	if w.payloadPos+uint64(len(buf)) > w.payloadLen {
		return 0, ErrExcessPayload
	}
	if err := w.driveSize(); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}
	n, err := w.accept(buf)
	if err != nil {
		return n, err
	}
	w.payloadPos += uint64(n)
	if w.payloadPos == w.payloadLen {
		w.phase = phasePadding
	}
	return n, nil
}

// drivePadding pushes the remaining zero padding bytes to the sink. It is a
// no-op once all padding has been flushed, and a no-op entirely when
// PaddingLength is zero.
func (w *Writer) drivePadding() error {
	pad := paddingLen(w.payloadLen)
	for w.padPos < pad {
		n, err := w.accept(w.padBuf[w.padPos:pad])
		if err != nil {
			return err
		}
		w.padPos += uint64(n)
	}
	return nil
}

func (w *Writer) flushSink() error {
	for {
		err := w.sink.PollFlush()
		if err == nil {
			return nil
		}
		if err != ErrWouldBlock {
			return err
		}
		if !w.waitOnceOnWouldBlock() {
			return ErrWouldBlock
		}
	}
}

// Flush drives the size prefix to completion if necessary, then -- if the
// payload is complete -- writes any remaining padding, and finally flushes
// the sink. If the payload is still incomplete (and non-empty), Flush still
// flushes whatever has been written so far and returns, since the frame
// cannot be completed without more caller data.
//
// Flush is idempotent: calling it repeatedly after the frame is complete
// only calls the sink's own (idempotent) flush.
func (w *Writer) Flush() error {
	if err := w.driveSize(); err != nil {
		return err
	}
	if w.phase == phasePayload {
		if w.payloadLen == 0 {
			w.phase = phasePadding
		} else {
			return w.flushSink()
		}
	}
	if err := w.drivePadding(); err != nil {
		return err
	}
	return w.flushSink()
}

// Shutdown flushes the writer and shuts down the sink. It reports
// ErrUncleanShutdown if the frame is still not complete (PaddingPhase at its
// bound) after that flush, which is the case when payload bytes are still
// missing; the sink is shut down regardless, and any
// sink error from that shutdown is reported in preference to
// ErrUncleanShutdown. If Flush itself fails (including with ErrWouldBlock),
// that error is returned immediately and the sink is not shut down -- the
// caller is expected to retry Shutdown once the sink is ready again.
func (w *Writer) Shutdown() error {
	if err := w.Flush(); err != nil {
		return err
	}
	complete := w.phase == phasePadding && w.padPos == paddingLen(w.payloadLen)
	shutdownErr := w.shutdownSink()
	if complete {
		return shutdownErr
	}
	if shutdownErr != nil {
		return shutdownErr
	}
	return ErrUncleanShutdown
}

func (w *Writer) shutdownSink() error {
	for {
		err := w.sink.PollShutdown()
		if err == nil {
			return nil
		}
		if err != ErrWouldBlock {
			return err
		}
		if !w.waitOnceOnWouldBlock() {
			return ErrWouldBlock
		}
	}
}

// Close is an alias for Shutdown, so *Writer satisfies io.WriteCloser.
func (w *Writer) Close() error {
	return w.Shutdown()
}
