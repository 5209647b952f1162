// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe

import (
	"runtime"
	"sync"
)

// Consumer hands out read-tokens in FIFO order. A Consumer is not safe for
// concurrent use by more than one goroutine — fan-out to multiple readers is
// out of scope; see [code.hybscloud.com/cyclicpipe] package doc.
type Consumer[T any] struct {
	rxFull       chan chan T
	txEmpty      chan chan T
	consumerGone chan struct{}
	stats        *stats
	closeOnce    sync.Once
	cleanup      runtime.Cleanup
}

// consumerCleanupArg carries what the consumer's abandonment cleanup needs
// to sever, without closing over the Consumer itself.
type consumerCleanupArg[T any] struct {
	txEmpty chan chan T
	gone    chan struct{}
}

func closeConsumerSide[T any](arg consumerCleanupArg[T]) {
	close(arg.gone)
	close(arg.txEmpty)
}

// AcquireRead blocks until a filled buffer is available and returns a
// read-token for it, or returns [ErrDisconnected] if the producer is gone
// with nothing left pending, or an in-flight write-token was abandoned.
func (c *Consumer[T]) AcquireRead() (*Token[T], error) {
	bufCh, ok := <-c.rxFull
	if !ok {
		return nil, ErrDisconnected
	}

	v, ok := <-bufCh
	if !ok {
		return nil, ErrDisconnected
	}

	sendCh := newSlot[T]()
	c.reserveEmpty(sendCh)

	c.stats.acquiredRead.AddAcqRel(1)
	return newToken(v, sendCh, dirRead, nil, c.stats), nil
}

// reserveEmpty pushes sendCh onto the empty-slot stream. A failure here —
// the producer already gone, or racing this consumer's own Close — is
// intentionally non-fatal: the spec's asymmetry is that a consumer can keep
// draining buffered work even after the producer disappears, so the read
// token this call is building is still returned as valid either way.
func (c *Consumer[T]) reserveEmpty(sendCh chan T) {
	defer func() { recover() }()
	select {
	case c.txEmpty <- sendCh:
	default:
		// Unreachable under the pipe's N-slot invariant (there is always
		// room); guarded rather than risk a block on a path the spec
		// requires to never fail the caller.
	}
}

// Close announces that this consumer is done. It is idempotent and safe to
// call from a goroutine other than the one calling AcquireRead — the
// documented way to force the producer's next AcquireWrite to observe
// ErrDisconnected without waiting on garbage collection.
func (c *Consumer[T]) Close() error {
	c.closeOnce.Do(func() {
		c.cleanup.Stop()
		close(c.consumerGone)
		close(c.txEmpty)
	})
	return nil
}

// Stats returns a point-in-time snapshot of this pipe's acquire/complete
// counters.
func (c *Consumer[T]) Stats() Snapshot {
	return c.stats.snapshot()
}
