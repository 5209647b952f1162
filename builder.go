// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe

import "runtime"

// Cloner is implemented by buffer types that need an independent copy per
// recycled slot. Types with reference semantics — slices, maps, pointers, or
// structs embedding them — must implement Clone, or every slot in the pipe
// will alias the same backing storage. Value-semantics types (numbers,
// strings, arrays of value types, plain structs without reference fields)
// don't need it: a bare Go assignment already duplicates them correctly.
type Cloner[T any] interface {
	Clone() T
}

func cloneTemplate[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Builder constructs a cyclicpipe [Producer]/[Consumer] pair.
//
// Example:
//
//	p, c, err := cyclicpipe.New[string]().
//		WithCapacity(2).
//		WithTemplate("").
//		Build()
type Builder[T any] struct {
	capacity    int
	template    T
	hasTemplate bool
}

// New creates a builder with the default capacity of 1 and no template.
func New[T any]() *Builder[T] {
	return &Builder[T]{capacity: 1}
}

// WithCapacity sets the number of buffers that recycle through the pipe.
// Capacity must be at least 1; [Builder.Build] returns [ErrInvalidCapacity]
// otherwise.
func (b *Builder[T]) WithCapacity(n int) *Builder[T] {
	b.capacity = n
	return b
}

// WithTemplate sets the seed value every recycled buffer is duplicated from.
// A template is mandatory; [Builder.Build] returns [ErrTemplateMissing]
// without one.
func (b *Builder[T]) WithTemplate(v T) *Builder[T] {
	b.template = v
	b.hasTemplate = true
	return b
}

// Build constructs the two circulation streams, seeds the pipe full of N
// duplicated buffers, and returns the producer and consumer ends.
func (b *Builder[T]) Build() (*Producer[T], *Consumer[T], error) {
	if !b.hasTemplate {
		return nil, nil, ErrTemplateMissing
	}
	if b.capacity < 1 {
		return nil, nil, ErrInvalidCapacity
	}

	emptyStream := make(chan chan T, b.capacity)
	fullStream := make(chan chan T, b.capacity)
	consumerGone := make(chan struct{})

	for i := 0; i < b.capacity; i++ {
		s := newSlot[T]()
		emptyStream <- s
		s <- cloneTemplate(b.template)
	}

	st := &stats{}

	p := &Producer[T]{
		rxEmpty:      emptyStream,
		txFull:       fullStream,
		consumerGone: consumerGone,
		stats:        st,
	}
	p.cleanup = runtime.AddCleanup(p, closeFullStream[T], fullStream)

	c := &Consumer[T]{
		rxFull:       fullStream,
		txEmpty:      emptyStream,
		consumerGone: consumerGone,
		stats:        st,
	}
	c.cleanup = runtime.AddCleanup(c, closeConsumerSide[T], consumerCleanupArg[T]{
		txEmpty: emptyStream,
		gone:    consumerGone,
	})

	return p, c, nil
}
