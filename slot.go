// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe

// A slot is a one-shot single-value carrier: at most one send ever happens
// on it. Receiving with the two-value form distinguishes the two outcomes a
// receiver can observe once the slot is actually ready:
//
//   - v, true  — the value was delivered normally.
//   - zero, false — the sender severed the slot without ever sending
//     (the token that owned it was abandoned).
//
// A pending (not yet ready) slot simply blocks the receiver, the third
// outcome described in the specification's slot contract.
func newSlot[T any]() chan T {
	return make(chan T, 1)
}
