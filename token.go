// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe

import (
	"runtime"
	"sync/atomic"
)

// direction distinguishes a write-token (issued by a Producer) from a
// read-token (issued by a Consumer). The two differ only in what Complete
// reports back to the caller; the acquire/complete mechanics are identical.
type direction uint8

const (
	dirWrite direction = iota
	dirRead
)

// Token is an exclusive handle to one recycled buffer. Acquiring a token
// grants temporary, mutable access to the buffer via [Token.Buf]; calling
// [Token.Complete] returns the buffer to the opposite stream and makes the
// token unusable.
//
// A Token may be handed to another goroutine (for example a worker that
// fills the buffer and completes it), but must not be used from two
// goroutines at once; that is not checked. A Token must not be used after
// Complete is called — this is runtime-checked and panics on violation, in
// the absence of Go's move semantics or linear types to enforce it at
// compile time.
type Token[T any] struct {
	buf          T
	sendCh       chan T
	dir          direction
	consumerGone <-chan struct{}
	stats        *stats
	done         atomic.Bool
	cleanup      runtime.Cleanup
}

// tokenCleanupArg is passed to the finalizer registered via runtime.AddCleanup
// instead of being captured by closure, so the cleanup itself never keeps the
// Token reachable.
type tokenCleanupArg[T any] struct {
	ch    chan T
	stats *stats
}

// abandonSlot severs a token's return slot when the token is garbage
// collected without Complete ever being called. The opposite side's next
// receive from this channel observes a closed, empty channel and surfaces
// ErrDisconnected — the same signal an explicit drop would produce, just on
// the garbage collector's schedule rather than immediately.
func abandonSlot[T any](arg tokenCleanupArg[T]) {
	close(arg.ch)
	arg.stats.abandoned.AddAcqRel(1)
}

// newToken builds a token and arms its abandonment cleanup. consumerGone is
// nil for read-tokens; Complete never consults it in that direction.
func newToken[T any](v T, sendCh chan T, dir direction, consumerGone <-chan struct{}, st *stats) *Token[T] {
	t := &Token[T]{
		buf:          v,
		sendCh:       sendCh,
		dir:          dir,
		consumerGone: consumerGone,
		stats:        st,
	}
	t.cleanup = runtime.AddCleanup(t, abandonSlot[T], tokenCleanupArg[T]{ch: sendCh, stats: st})
	return t
}

// Buf returns a pointer to the owned buffer for in-place mutation. It panics
// if called after Complete.
func (t *Token[T]) Buf() *T {
	if t.done.Load() {
		panic("cyclicpipe: token used after Complete")
	}
	return &t.buf
}

// Complete returns the buffer to the opposite stream and consumes the
// token. It never blocks and, per direction:
//
//   - a read-token's Complete always returns nil, even if the producer is
//     long gone — the spec's deliberate asymmetry, so a consumer can finish
//     draining without being penalized for the producer's absence.
//   - a write-token's Complete returns [ErrCompleteIgnoredConsumerGone] if
//     the consumer has already announced it is gone. The buffer is still
//     handed off; nothing will ever read it.
//
// Calling Complete a second time, or after the token has already been used
// by something that observed done, panics.
func (t *Token[T]) Complete() error {
	if !t.done.CompareAndSwap(false, true) {
		panic("cyclicpipe: token completed more than once")
	}
	t.cleanup.Stop()
	t.sendCh <- t.buf

	if t.dir == dirRead {
		t.stats.completedRead.AddAcqRel(1)
		return nil
	}
	t.stats.completedWrite.AddAcqRel(1)
	select {
	case <-t.consumerGone:
		return ErrCompleteIgnoredConsumerGone
	default:
		return nil
	}
}
