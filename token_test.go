// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cyclicpipe_test

import (
	"testing"

	"code.hybscloud.com/cyclicpipe"
)

// =============================================================================
// Token lifecycle
// =============================================================================

func TestTokenCompleteDeliversBuffer(t *testing.T) {
	p, c, err := cyclicpipe.New[string]().WithCapacity(1).WithTemplate("").Build()
	if err != nil {
		t.Fatal(err)
	}

	w, err := p.AcquireWrite()
	if err != nil {
		t.Fatal(err)
	}
	*w.Buf() = "hello"
	if err := w.Complete(); err != nil {
		t.Fatalf("write-token Complete: %v", err)
	}

	r, err := c.AcquireRead()
	if err != nil {
		t.Fatal(err)
	}
	if *r.Buf() != "hello" {
		t.Fatalf("got %q, want %q", *r.Buf(), "hello")
	}
	if err := r.Complete(); err != nil {
		t.Fatalf("read-token Complete: %v", err)
	}
}

func TestTokenDoubleCompletePanics(t *testing.T) {
	p, _, err := cyclicpipe.New[string]().WithCapacity(1).WithTemplate("").Build()
	if err != nil {
		t.Fatal(err)
	}
	w, err := p.AcquireWrite()
	if err != nil {
		t.Fatal(err)
	}
	w.Complete()

	defer func() {
		if recover() == nil {
			t.Fatal("second Complete should panic")
		}
	}()
	w.Complete()
}

func TestTokenBufAfterCompletePanics(t *testing.T) {
	p, _, err := cyclicpipe.New[string]().WithCapacity(1).WithTemplate("").Build()
	if err != nil {
		t.Fatal(err)
	}
	w, err := p.AcquireWrite()
	if err != nil {
		t.Fatal(err)
	}
	w.Complete()

	defer func() {
		if recover() == nil {
			t.Fatal("Buf after Complete should panic")
		}
	}()
	w.Buf()
}
