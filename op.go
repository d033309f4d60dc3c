// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import (
	"code.hybscloud.com/kont"
)

// Envelope is the request/reply pair crossing the pipe boundary.
// ID is the correlation key; Message is caller-opaque.
type Envelope struct {
	ID      uint64
	Message any
}

// SenderFunc delivers an outbound envelope to the transport.
// A nil return acknowledges dispatch only; the reply still arrives
// through the receiver handle. A non-nil return is routed through the
// retry engine.
type SenderFunc func(Envelope) error

// ReceiverFunc is the inbound handle. The transport invokes it when a
// reply envelope arrives.
type ReceiverFunc func(Envelope)

// Send submits a message and returns its reply future.
//
// A nil message is a no-op: no request record is created, no id is
// consumed, and Send returns a nil *Reply. While the pipe is flushing
// the returned future is rejected immediately with [ErrFlushing].
func (p *Pipe) Send(message any) *Reply {
	if message == nil {
		return nil
	}
	p.mu.Lock()
	if p.flushing {
		p.mu.Unlock()
		p.stats.rejected.Add(1)
		return rejectedReply(ErrFlushing)
	}
	rec := p.pool.get()
	rec.id = p.serial.next()
	rec.msg = message
	rec.reply = newReply()
	reply := rec.reply
	p.queue.push(rec)
	p.stats.accepted.Add(1)
	p.settleLocked()
	p.mu.Unlock()
	return reply
}

// Flush switches the pipe into drain mode and returns the flush
// future. New sends are rejected from this point on; queued requests
// keep promoting until both sets are empty. At most one flush is
// outstanding; repeated calls return the same future.
func (p *Pipe) Flush() *Flush {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.flush != nil {
		return p.flush
	}
	p.flushing = true
	p.flush = newFlush()
	p.log.Debug("flush started", "pending", len(p.pending), "queued", p.queue.len())
	if p.idleLocked() {
		p.flush.finish()
	}
	return p.flush
}

// Sender registers the outbound callable, replacing any previous
// registration. Attempts dispatched before the replacement keep the
// sender they were handed to.
func (p *Pipe) Sender(fn SenderFunc) {
	p.mu.Lock()
	p.sender = fn
	p.mu.Unlock()
}

// Receiver returns the inbound handle bound to this pipe. Replies for
// ids that are no longer pending (late, duplicate, or never issued)
// are discarded silently.
func (p *Pipe) Receiver() ReceiverFunc {
	return func(env Envelope) {
		p.mu.Lock()
		rec, ok := p.pending[env.ID]
		if !ok {
			p.mu.Unlock()
			p.stats.discarded.Add(1)
			p.log.Debug("discarded reply", "id", env.ID)
			return
		}
		p.stats.replies.Add(1)
		p.finishLocked(rec, kont.Right[error, any](env.Message))
		p.settleLocked()
		p.mu.Unlock()
	}
}
