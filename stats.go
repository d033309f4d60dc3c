// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import "code.hybscloud.com/atomix"

// counters are lock-free dispatch counters, updated on the hot paths
// and readable without taking the pipe lock.
type counters struct {
	accepted  atomix.Uint64
	rejected  atomix.Uint64
	attempts  atomix.Uint64
	retries   atomix.Uint64
	replies   atomix.Uint64
	discarded atomix.Uint64
	timeouts  atomix.Uint64
	failures  atomix.Uint64
}

// Stats is a point-in-time snapshot of pipe activity. None of these
// feed back into pipe behaviour.
type Stats struct {
	Accepted  uint64 // sends admitted to the queue
	Rejected  uint64 // sends rejected while flushing
	Attempts  uint64 // sender invocations
	Retries   uint64 // re-dispatches after a sender error
	Replies   uint64 // correlated replies delivered
	Discarded uint64 // late or unknown replies dropped
	Timeouts  uint64 // attempts expired by the pending timeout
	Failures  uint64 // requests failed after exhausting retries
}

// Stats returns a snapshot of the pipe's dispatch counters.
func (p *Pipe) Stats() Stats {
	return Stats{
		Accepted:  p.stats.accepted.Load(),
		Rejected:  p.stats.rejected.Load(),
		Attempts:  p.stats.attempts.Load(),
		Retries:   p.stats.retries.Load(),
		Replies:   p.stats.replies.Load(),
		Discarded: p.stats.discarded.Load(),
		Timeouts:  p.stats.timeouts.Load(),
		Failures:  p.stats.failures.Load(),
	}
}
