// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package whipper turns an unordered, asynchronous message transport
// into a correlated, bounded, retrying, future-style request API.
//
// Callers hand a message to [Pipe.Send] and receive a [Reply] future
// that resolves with the matching reply or fails with a taxonomised
// error. The pipe owns the correlation table, admission control,
// queueing, retry policy, per-attempt timeouts, and an orderly flush
// lifecycle. It never inspects message payloads.
//
// # Architecture
//
//   - Correlation: monotonically increasing 64-bit request ids via [code.hybscloud.com/atomix]. Replies correlate by id only; late or unknown deliveries are discarded.
//   - Admission: at most maxPending requests in flight. Excess sends park in a FIFO queue and promote, in send order, as pending slots free.
//   - Retry/Timeout: a fresh one-shot timer per attempt and an immediate-retry budget. Failures surface as [*TimeoutError] and [*SendError] on the reply future.
//   - Non-blocking: [Reply.TryAwait] and [Flush.TryWait] return [code.hybscloud.com/iox.ErrWouldBlock] while unresolved; [Reply.Await] and [Flush.Wait] block.
//   - Outcomes: terminal results are [code.hybscloud.com/kont.Either] values — Right carries the reply message, Left the error.
//   - Flush: [Pipe.Flush] drains both sets without freezing in-flight work; only new sends are rejected.
//
// # Transport
//
// The pipe is transport-agnostic. Outbound envelopes go to a
// user-supplied [SenderFunc]; inbound replies enter through the handle
// returned by [Pipe.Receiver]. The sender's return value acknowledges
// dispatch only; a reply always arrives via the receiver.
//
// # Example
//
//	p := whipper.New(whipper.WithMaxPending(4))
//	recv := p.Receiver()
//	p.Sender(func(env whipper.Envelope) error {
//		recv(env) // loopback transport
//		return nil
//	})
//	reply, err := p.Send("ping").Await()
package whipper
