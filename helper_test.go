// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"github.com/leaplegal/whipper"
)

const testDeadline = 5 * time.Second

// loopbackPipe builds a pipe whose sender feeds every envelope
// straight back into the receiver handle.
func loopbackPipe(opts ...whipper.Option) *whipper.Pipe {
	p := whipper.New(opts...)
	recv := p.Receiver()
	p.Sender(func(env whipper.Envelope) error {
		recv(env)
		return nil
	})
	return p
}

// heldTransport captures outbound envelopes and replies only when the
// test releases them, keeping requests pending deterministically.
type heldTransport struct {
	recv whipper.ReceiverFunc

	mu  sync.Mutex
	out []whipper.Envelope
}

func newHeldTransport(p *whipper.Pipe) *heldTransport {
	t := &heldTransport{recv: p.Receiver()}
	p.Sender(t.send)
	return t
}

func (t *heldTransport) send(env whipper.Envelope) error {
	t.mu.Lock()
	t.out = append(t.out, env)
	t.mu.Unlock()
	return nil
}

func (t *heldTransport) sentCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.out)
}

func (t *heldTransport) sent() []whipper.Envelope {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]whipper.Envelope(nil), t.out...)
}

// releaseNext echoes the oldest held envelope back into the pipe.
func (t *heldTransport) releaseNext(tb testing.TB) {
	tb.Helper()
	t.mu.Lock()
	if len(t.out) == 0 {
		t.mu.Unlock()
		tb.Fatalf("no held envelope to release")
	}
	env := t.out[0]
	t.out = t.out[1:]
	t.mu.Unlock()
	t.recv(env)
}

// waitSent polls with adaptive backoff until the transport has seen
// at least n envelopes. Dispatch runs on per-attempt goroutines, so
// arrival lags Send by a scheduling tick.
func (t *heldTransport) waitSent(tb testing.TB, n int) {
	tb.Helper()
	var bo iox.Backoff
	deadline := time.Now().Add(testDeadline)
	for t.sentCount() < n {
		if time.Now().After(deadline) {
			tb.Fatalf("transport saw %d envelopes, want %d", t.sentCount(), n)
		}
		bo.Wait()
	}
}

// awaitReply resolves a reply future with a test deadline.
func awaitReply(tb testing.TB, r *whipper.Reply) (any, error) {
	tb.Helper()
	select {
	case <-r.Done():
	case <-time.After(testDeadline):
		tb.Fatalf("reply never resolved")
	}
	return r.Await()
}

// awaitFlush resolves a flush future with a test deadline.
func awaitFlush(tb testing.TB, f *whipper.Flush) {
	tb.Helper()
	select {
	case <-f.Done():
	case <-time.After(testDeadline):
		tb.Fatalf("flush never resolved")
	}
}
