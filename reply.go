// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Reply is the single-shot future returned by [Pipe.Send]. Exactly one
// terminal event resolves it: a correlated reply, a timeout, a
// sender failure after the retry budget is spent, or an immediate
// rejection with [ErrFlushing] or [ErrNoSender].
type Reply struct {
	done    chan struct{}
	outcome kont.Either[error, any]
}

func newReply() *Reply {
	return &Reply{done: make(chan struct{})}
}

func rejectedReply(err error) *Reply {
	r := newReply()
	r.complete(kont.Left[error, any](err))
	return r
}

// complete resolves the future. Called at most once; the outcome is
// published before the done channel closes.
func (r *Reply) complete(out kont.Either[error, any]) {
	r.outcome = out
	close(r.done)
}

// Done returns a channel that is closed once the future resolves.
func (r *Reply) Done() <-chan struct{} {
	return r.done
}

// Await blocks until the future resolves, returning the reply message
// or the terminal error.
func (r *Reply) Await() (any, error) {
	<-r.done
	return r.unpack()
}

// TryAwait is the non-blocking variant of Await. It returns
// iox.ErrWouldBlock while the future is unresolved.
func (r *Reply) TryAwait() (any, error) {
	select {
	case <-r.done:
		return r.unpack()
	default:
		return nil, iox.ErrWouldBlock
	}
}

func (r *Reply) unpack() (any, error) {
	if msg, ok := r.outcome.GetRight(); ok {
		return msg, nil
	}
	err, _ := r.outcome.GetLeft()
	return nil, err
}

// Flush is the single-shot future returned by [Pipe.Flush]. It
// resolves once both the pending set and the queue have drained.
// Requests that fail still count as drained.
type Flush struct {
	ch       chan struct{}
	resolved bool // guarded by the pipe mutex
}

func newFlush() *Flush {
	return &Flush{ch: make(chan struct{})}
}

func (f *Flush) finish() {
	if !f.resolved {
		f.resolved = true
		close(f.ch)
	}
}

// Done returns a channel that is closed once the drain completes.
func (f *Flush) Done() <-chan struct{} {
	return f.ch
}

// Wait blocks until the drain completes.
func (f *Flush) Wait() {
	<-f.ch
}

// TryWait is the non-blocking variant of Wait. It returns
// iox.ErrWouldBlock while the drain is still in progress.
func (f *Flush) TryWait() error {
	select {
	case <-f.ch:
		return nil
	default:
		return iox.ErrWouldBlock
	}
}
