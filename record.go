// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import (
	"time"

	"code.hybscloud.com/lfq"
)

// recycleCapacity is the bounded capacity of the record free list.
// Records evicted on overflow fall to the GC.
const recycleCapacity = 32

// record is the arena entry for one live request. Its phase is encoded
// by set membership: queued while in the admission queue, pending
// while in the pending map, completed once it is in neither. The pipe
// owns the record until its terminal transition and then recycles it.
// The reply future is held here by pointer; nothing points back from
// the future to the record.
type record struct {
	id      uint64
	msg     any
	reply   *Reply
	retries int
	epoch   uint32
	timer   *time.Timer
}

// stopTimer cancels the attempt timer if one is armed. Timers are
// cancelled on every exit path; a callback that already fired is
// filtered by the attempt epoch.
func (r *record) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *record) reset() {
	*r = record{}
}

// recordPool recycles completed records through a bounded SPSC ring.
// Every access happens under the pipe mutex, so the single-producer
// single-consumer contract holds.
type recordPool struct {
	ring lfq.SPSC[*record]
	slot *record
}

func (p *recordPool) init() {
	p.ring.Init(recycleCapacity)
}

// get returns a recycled record, or a fresh one when the ring is
// empty.
func (p *recordPool) get() *record {
	if rec, err := p.ring.Dequeue(); err == nil {
		return rec
	}
	return &record{}
}

// put clears a completed record and returns it to the ring. When the
// ring is full the record is dropped to the GC.
func (p *recordPool) put(rec *record) {
	rec.reset()
	p.slot = rec
	_ = p.ring.Enqueue(&p.slot)
}
