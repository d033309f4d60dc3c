// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import (
	"time"

	"code.hybscloud.com/kont"
)

// promoteLocked moves records from the queue head into the pending set
// until maxPending is reached. Promotion is FIFO and continues during
// a flush: a flush drains in-flight work, it does not freeze it.
func (p *Pipe) promoteLocked() {
	for len(p.pending) < p.cfg.maxPending && p.queue.len() > 0 {
		rec := p.queue.pop()
		p.pending[rec.id] = rec
		p.dispatchLocked(rec)
	}
}

// dispatchLocked starts one attempt for a pending record: arms the
// attempt timer and hands the envelope to the sender on its own
// goroutine, outside the lock. With no sender registered the record
// fails fast with ErrNoSender.
func (p *Pipe) dispatchLocked(rec *record) {
	send := p.sender
	if send == nil {
		p.finishLocked(rec, kont.Left[error, any](ErrNoSender))
		return
	}
	epoch := rec.epoch
	if p.cfg.pendingTimeout > 0 {
		id := rec.id
		rec.timer = time.AfterFunc(p.cfg.pendingTimeout, func() {
			p.expire(id, epoch)
		})
	}
	p.stats.attempts.Add(1)
	p.log.Trace("dispatch", "id", rec.id, "attempt", rec.retries+1)
	go func(env Envelope) {
		if err := send(env); err != nil {
			p.senderFailed(env.ID, epoch, err)
		}
	}(Envelope{ID: rec.id, Message: rec.msg})
}

// senderFailed routes a sender error through the retry engine. The
// record keeps its pending slot across retries; the same envelope is
// re-dispatched immediately under a new attempt epoch. Stale reports
// (the attempt was already resolved by a reply, a timeout, or a later
// retry) are dropped.
func (p *Pipe) senderFailed(id uint64, epoch uint32, cause error) {
	p.mu.Lock()
	rec, ok := p.pending[id]
	if !ok || rec.epoch != epoch {
		p.mu.Unlock()
		return
	}
	rec.stopTimer()
	if rec.retries < p.cfg.maxRetries {
		rec.retries++
		rec.epoch++
		p.stats.retries.Add(1)
		p.log.Debug("retrying", "id", id, "attempt", rec.retries+1, "error", cause)
		p.dispatchLocked(rec)
		p.settleLocked()
		p.mu.Unlock()
		return
	}
	attempts := rec.retries + 1
	p.stats.failures.Add(1)
	p.log.Debug("send failed", "id", id, "attempts", attempts, "error", cause)
	p.finishLocked(rec, kont.Left[error, any](&SendError{ID: id, Attempts: attempts, Cause: cause}))
	p.settleLocked()
	p.mu.Unlock()
}

// expire handles a fired attempt timer. The timer races with reply
// delivery and sender failure; whichever observes the record pending
// at its epoch first wins, and the rest are no-ops.
func (p *Pipe) expire(id uint64, epoch uint32) {
	p.mu.Lock()
	rec, ok := p.pending[id]
	if !ok || rec.epoch != epoch {
		p.mu.Unlock()
		return
	}
	p.stats.timeouts.Add(1)
	p.log.Debug("timed out", "id", id, "timeout", p.cfg.pendingTimeout)
	p.finishLocked(rec, kont.Left[error, any](&TimeoutError{ID: id, Timeout: p.cfg.pendingTimeout}))
	p.settleLocked()
	p.mu.Unlock()
}

// finishLocked applies the single terminal transition for a record:
// cancels its timer, removes it from the pending set, resolves the
// reply future, and recycles the record. Exactly one terminal event
// fires per request.
func (p *Pipe) finishLocked(rec *record, out kont.Either[error, any]) {
	rec.stopTimer()
	delete(p.pending, rec.id)
	rec.reply.complete(out)
	p.pool.put(rec)
}

// settleLocked fills freed pending slots and resolves an outstanding
// flush once both sets have drained.
func (p *Pipe) settleLocked() {
	p.promoteLocked()
	if p.flushing && p.flush != nil && p.idleLocked() {
		p.flush.finish()
	}
}
