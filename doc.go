// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cyclicpipe provides a bounded, order-preserving, single-producer
// single-consumer pipe that recycles a fixed population of buffers between a
// writer and a reader.
//
// Instead of allocating on every message, cyclicpipe circulates N
// pre-allocated buffers through two back-to-back FIFO streams (empty → full →
// empty). Acquiring a buffer hands out a [Token] that grants temporary,
// exclusive ownership; completing the token returns the buffer to the
// opposite stream.
//
// # Quick Start
//
//	producer, consumer, err := cyclicpipe.New[[]float32]().
//		WithCapacity(2).
//		WithTemplate(make([]float32, 1000)).
//		Build()
//	if err != nil {
//		// ErrTemplateMissing or ErrInvalidCapacity
//	}
//
//	go func() {
//		for i := 0; i < numFrames; i++ {
//			tok, err := producer.AcquireWrite()
//			if err != nil {
//				return // cyclicpipe.ErrDisconnected: consumer is gone
//			}
//			(*tok.Buf())[0] = float32(i)
//			tok.Complete()
//		}
//	}()
//
//	for i := 0; i < numFrames; i++ {
//		tok, err := consumer.AcquireRead()
//		if err != nil {
//			break // cyclicpipe.ErrDisconnected: producer is gone
//		}
//		process(*tok.Buf())
//		tok.Complete()
//	}
//
// # Ordering
//
// Read-tokens are delivered in the order write-tokens were acquired, not the
// order they were completed. A pool of worker goroutines can each hold a
// write-token and finish in any order; the consumer still observes buffers
// in acquisition order. This is the whole point of the design: the slot on
// the downstream stream is reserved at acquire time, before the caller does
// any work, so completion order never perturbs delivery order.
//
// # Capacity
//
// Capacity N is the number of buffers recycling through the pipe at once.
// With N == 1 the pipe collapses to a strictly alternating single-buffer
// handoff: the producer's second acquire blocks until the consumer completes
// the first read. After N outstanding acquires without an intervening
// completion on the opposite side, the next acquire on either side blocks.
//
// # Disconnection
//
// [Producer.AcquireWrite] and [Consumer.AcquireRead] block until a buffer is
// available or the opposite end is gone, in which case they return
// [ErrDisconnected]. There are no acquire timeouts; a caller that needs one
// drops its own end from a separate goroutine (see [Producer.Close] and
// [Consumer.Close]) to force the other side to observe [ErrDisconnected].
//
// A [Token] that is never completed — because the goroutine holding it
// panics, exits early, or simply forgets — still eventually severs its
// return slot once the token is collected, surfacing as [ErrDisconnected] on
// the opposite side's next acquire. This approximates Rust's Drop-on-scope-
// exit, which Go has no equivalent for; callers that need the signal to fire
// immediately, rather than whenever the garbage collector gets around to it,
// should call [Token.Complete] explicitly on every path, including error
// paths.
//
// # Buffer reuse
//
// The template passed to [Builder.WithTemplate] is duplicated once per slot
// at build time. Value-semantics types (numbers, strings, arrays of value
// types, plain structs) are duplicated correctly by a bare Go assignment.
// Reference-semantics types (slices, maps, pointers) must implement
// [Cloner] or every recycled slot will alias the same backing storage.
package cyclicpipe
