// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Pipe is the correlation and admission primitive. It tracks in-flight
// requests in a pending set bounded by maxPending, parks excess
// requests in a FIFO queue, and drives retries, per-attempt timeouts,
// and the flush drain.
//
// Every state transition is serialised under a single mutex. The
// sender runs on a per-attempt goroutine outside the lock, so a
// transport that replies synchronously cannot deadlock.
type Pipe struct {
	cfg config
	log hclog.Logger

	serial serial
	stats  counters

	mu       sync.Mutex
	sender   SenderFunc
	pending  map[uint64]*record
	queue    recordQueue
	pool     recordPool
	flushing bool
	flush    *Flush
}

// New creates a pipe configured by opts.
func New(opts ...Option) *Pipe {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Pipe{
		cfg:     cfg,
		log:     cfg.logger,
		sender:  cfg.sender,
		pending: make(map[uint64]*record, cfg.maxPending),
	}
	p.pool.init()
	return p
}

// Idle reports whether both the pending set and the queue are empty.
func (p *Pipe) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idleLocked()
}

// Pending returns the number of in-flight requests.
func (p *Pipe) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Queued returns the number of requests parked in the admission queue.
func (p *Pipe) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.len()
}

// AtMaxPending reports whether every pending slot is occupied.
func (p *Pipe) AtMaxPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending) == p.cfg.maxPending
}

// Flushing reports whether the pipe is in drain mode. Drain mode is
// one-shot: once entered it is never reset.
func (p *Pipe) Flushing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushing
}

func (p *Pipe) idleLocked() bool {
	return len(p.pending) == 0 && p.queue.len() == 0
}
