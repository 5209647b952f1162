// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe

import "code.hybscloud.com/atomix"

// pad is cache line padding to prevent false sharing between counters that
// are written from the producer goroutine and the consumer goroutine
// respectively.
type pad [64]byte

// stats holds the lock-free counters shared by a Producer/Consumer pair
// created from the same [Builder.Build] call. Nothing in the acquire/complete
// protocol reads these back; they exist purely for introspection of a
// running pipe.
type stats struct {
	_             pad
	acquiredWrite atomix.Uint64
	_             pad
	completedWrite atomix.Uint64
	_              pad
	acquiredRead atomix.Uint64
	_            pad
	completedRead atomix.Uint64
	_             pad
	abandoned atomix.Uint64
	_         pad
}

// Snapshot is a point-in-time read of a pipe's counters. Producer and
// Consumer each see the same underlying counters; Snapshot values taken at
// different times are not synchronized with each other beyond the ordering
// the counters' own acquire-release semantics provide.
type Snapshot struct {
	// AcquiredWrite is the number of write-tokens successfully acquired.
	AcquiredWrite uint64
	// CompletedWrite is the number of write-tokens returned via Complete.
	CompletedWrite uint64
	// AcquiredRead is the number of read-tokens successfully acquired.
	AcquiredRead uint64
	// CompletedRead is the number of read-tokens returned via Complete.
	CompletedRead uint64
	// Abandoned is the number of tokens (either direction) that were
	// garbage collected without Complete ever being called.
	Abandoned uint64
}

func (s *stats) snapshot() Snapshot {
	return Snapshot{
		AcquiredWrite:  s.acquiredWrite.LoadAcquire(),
		CompletedWrite: s.completedWrite.LoadAcquire(),
		AcquiredRead:   s.acquiredRead.LoadAcquire(),
		CompletedRead:  s.completedRead.LoadAcquire(),
		Abandoned:      s.abandoned.LoadAcquire(),
	}
}
