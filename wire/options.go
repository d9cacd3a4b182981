// Copyright 2026 Nixbytes Project Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "time"

// Options configures how a Writer reacts to iox.ErrWouldBlock from its Sink.
//
// RetryDelay policy:
//   - negative: nonblocking. iox.ErrWouldBlock is returned to the caller
//     immediately; the caller must re-invoke the same operation later.
//   - zero: cooperative blocking. The writer yields (runtime.Gosched) and
//     retries in-process.
//   - positive: the writer sleeps for the duration and retries in-process.
type Options struct {
	RetryDelay time.Duration
}

var defaultOptions = Options{RetryDelay: -1}

// Option mutates Options during construction.
type Option func(*Options)

// WithRetryDelay sets the sleep duration used between retries when the sink
// reports iox.ErrWouldBlock. A zero duration yields instead of sleeping.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on
// iox.ErrWouldBlock, so Write/Flush/Shutdown never return ErrWouldBlock.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock forces non-blocking behavior: iox.ErrWouldBlock is returned to
// the caller immediately. This is the default.
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}
