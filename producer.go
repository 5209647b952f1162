// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe

import (
	"runtime"
	"sync"
)

// Producer hands out write-tokens in FIFO order. A Producer is not safe for
// concurrent use by more than one goroutine — fan-in from multiple writers
// is out of scope; see [code.hybscloud.com/cyclicpipe] package doc.
type Producer[T any] struct {
	rxEmpty      chan chan T
	txFull       chan chan T
	consumerGone chan struct{}
	stats        *stats
	closeOnce    sync.Once
	cleanup      runtime.Cleanup
}

// closeFullStream closes the producer's sending end of the full-slot stream.
// This is the signal consumers see natively once they drain whatever was
// already buffered: a closed, empty channel on their next receive.
func closeFullStream[T any](ch chan chan T) {
	close(ch)
}

// AcquireWrite blocks until a buffer is available for writing and returns a
// write-token for it, or returns [ErrDisconnected] if the consumer is gone
// or an in-flight read-token on the consumer's side was abandoned.
//
// The slot on the full-slot stream is reserved before this call returns —
// before the caller writes anything — so the order tokens are acquired in
// is the order the consumer will observe them, regardless of the order
// multiple holders of write-tokens call Complete.
func (p *Producer[T]) AcquireWrite() (*Token[T], error) {
	bufCh, ok := <-p.rxEmpty
	if !ok {
		return nil, ErrDisconnected
	}

	v, ok := <-bufCh
	if !ok {
		return nil, ErrDisconnected
	}

	sendCh := newSlot[T]()
	if !p.reserveFull(sendCh) {
		return nil, ErrDisconnected
	}

	p.stats.acquiredWrite.AddAcqRel(1)
	return newToken(v, sendCh, dirWrite, p.consumerGone, p.stats), nil
}

// reserveFull pushes sendCh onto the full-slot stream, reporting false if
// the consumer has already announced it is gone. txFull is buffered to the
// pipe's capacity and the N-slot invariant guarantees room, so the only way
// this ever fails is consumer disconnection (observed via consumerGone) or,
// defensively, a send racing a concurrent Close of this same Producer from
// a watchdog goroutine.
func (p *Producer[T]) reserveFull(sendCh chan T) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case <-p.consumerGone:
		return false
	default:
	}
	select {
	case p.txFull <- sendCh:
		return true
	case <-p.consumerGone:
		return false
	}
}

// Close announces that this producer is done. It is idempotent and safe to
// call from a goroutine other than the one calling AcquireWrite — the
// documented way to force the consumer's next AcquireRead to eventually
// observe ErrDisconnected once buffered data is drained, without waiting on
// garbage collection.
func (p *Producer[T]) Close() error {
	p.closeOnce.Do(func() {
		p.cleanup.Stop()
		close(p.txFull)
	})
	return nil
}

// Stats returns a point-in-time snapshot of this pipe's acquire/complete
// counters.
func (p *Producer[T]) Stats() Snapshot {
	return p.stats.snapshot()
}
