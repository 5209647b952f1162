// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe

import "errors"

// ErrTemplateMissing is returned by [Builder.Build] when no template was
// configured via [Builder.WithTemplate]. A template is mandatory: it is the
// value every recycled buffer is duplicated from.
var ErrTemplateMissing = errors.New("cyclicpipe: builder has no template")

// ErrInvalidCapacity is returned by [Builder.Build] when the configured
// capacity is less than 1. Capacity 0 would leave the pipe with nothing to
// circulate; there is no well-defined behavior for it.
var ErrInvalidCapacity = errors.New("cyclicpipe: capacity must be at least 1")

// ErrDisconnected is returned by [Producer.AcquireWrite] and
// [Consumer.AcquireRead] when the opposite end of the pipe is gone, or when
// an in-flight token on the opposite side was abandoned without being
// completed. Callers typically treat it as end-of-stream.
var ErrDisconnected = errors.New("cyclicpipe: opposite end of pipe is disconnected")

// ErrCompleteIgnoredConsumerGone is returned by [Token.Complete] on a
// write-token when the consumer has already announced it is gone. The
// buffer was still handed off to the (now orphaned) return slot — Complete
// never blocks and never leaves the token usable again — but nothing will
// ever read it. This is a control-flow signal, not a failure: there is
// nothing to retry, and the caller's own next [Producer.AcquireWrite] will
// return [ErrDisconnected].
var ErrCompleteIgnoredConsumerGone = errors.New("cyclicpipe: complete ignored, consumer is gone")

// IsDisconnected reports whether err is (or wraps) [ErrDisconnected].
func IsDisconnected(err error) bool {
	return errors.Is(err, ErrDisconnected)
}

// IsSemantic reports whether err is a control-flow signal rather than a
// failure. Only [ErrCompleteIgnoredConsumerGone] qualifies: it carries
// information, not an error the caller needs to handle or retry.
func IsSemantic(err error) bool {
	return errors.Is(err, ErrCompleteIgnoredConsumerGone)
}
