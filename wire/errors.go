// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	// ErrExcessPayload reports that a write would push cumulative payload
	// bytes past the PayloadLength fixed at construction, or that a non-empty
	// write was attempted once the writer has entered PaddingPhase.
	ErrExcessPayload = errors.New("wire: excess payload")

	// ErrSinkZero reports that the sink accepted zero bytes without
	// signalling Pending or an error. Spec treats this as a broken pipe.
	ErrSinkZero = errors.New("wire: sink accepted zero bytes")

	// ErrUncleanShutdown reports that the writer had not reached
	// PaddingPhase(PaddingLength) even after Shutdown's own flush, because
	// payload bytes were still missing. The sink is still shut down; this
	// error is only returned when the sink shutdown itself did not fail.
	ErrUncleanShutdown = errors.New("wire: unclean shutdown")
)

// ErrWouldBlock is the control-flow signal a Sink returns from PollAccept,
// PollFlush, or PollShutdown to mean "no further progress without waiting".
// It is re-exported from iox so callers rarely need to import it directly,
// mirroring how code.hybscloud.com/framer re-exports iox.ErrWouldBlock.
var ErrWouldBlock = iox.ErrWouldBlock
