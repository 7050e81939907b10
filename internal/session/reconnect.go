package session

import (
	"context"
	"time"
)

// Backoff computes exponential reconnect delays, capped at Max.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// DefaultBackoff is the reconnect schedule used by the CLI.
var DefaultBackoff = Backoff{Base: 500 * time.Millisecond, Max: 15 * time.Second}

// Delay returns the wait before the given attempt (0-based).
func (b Backoff) Delay(attempt int) time.Duration {
	d := b.Base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= b.Max {
			return b.Max
		}
	}
	return d
}

// Reconnect dials the server until a connection is established or ctx is
// cancelled. The server treats the old connection as gone the moment the
// transport dropped, so the caller must re-declare identity and request a
// fresh pairing on the returned session.
func Reconnect(ctx context.Context, serverURL string, b Backoff) (*Session, error) {
	for attempt := 0; ; attempt++ {
		s, err := Dial(serverURL)
		if err == nil {
			return s, nil
		}

		timer := time.NewTimer(b.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
