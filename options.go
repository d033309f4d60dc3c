// ©Leap Legal Software, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package whipper

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

type config struct {
	maxPending     int
	maxRetries     int
	pendingTimeout time.Duration
	logger         hclog.Logger
	sender         SenderFunc
}

func defaultConfig() config {
	return config{
		maxPending: 1,
		logger:     hclog.NewNullLogger(),
	}
}

// Option configures a Pipe.
type Option func(*config)

// WithMaxPending bounds the number of concurrently pending requests.
// Values below 1 are clamped to 1. The default is 1.
func WithMaxPending(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.maxPending = n
	}
}

// WithMaxRetries sets the retry budget per request. Retries count
// re-dispatches after the first attempt, so a request is attempted at
// most n+1 times. Re-dispatch is immediate; backoff is the sender's
// concern. The default is 0.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.maxRetries = n
	}
}

// WithPendingTimeout arms a fresh one-shot timer on each attempt of a
// pending request. Zero disables the timer. The default is 0.
func WithPendingTimeout(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			d = 0
		}
		c.pendingTimeout = d
	}
}

// WithLogger sets the diagnostic sink. The logger has no semantic
// effect. The default is a null logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = hclog.NewNullLogger()
		}
		c.logger = l
	}
}

// WithSender registers the outbound callable at construction,
// equivalent to calling [Pipe.Sender] before the first Send.
func WithSender(fn SenderFunc) Option {
	return func(c *config) {
		c.sender = fn
	}
}
