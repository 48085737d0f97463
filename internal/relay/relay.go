package relay

import "context"

// DefaultCapacity is the channel buffer size.
const DefaultCapacity = 256

// Relay is a single-producer, single-consumer queue of updates.
type Relay struct {
	ch chan Update
}

// New creates a relay with the given capacity; non-positive values use
// DefaultCapacity.
func New(capacity int) *Relay {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Relay{ch: make(chan Update, capacity)}
}

// Post enqueues u, waiting for room if the buffer is full. It gives up only
// when ctx is done.
func (r *Relay) Post(ctx context.Context, u Update) error {
	select {
	case r.ch <- u:
		return nil
	default:
	}
	select {
	case r.ch <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Offer enqueues u if there is room and reports whether it did.
func (r *Relay) Offer(u Update) bool {
	select {
	case r.ch <- u:
		return true
	default:
		return false
	}
}

// Drain applies every queued update in FIFO order without blocking and
// returns how many were applied.
func (r *Relay) Drain(apply func(Update)) int {
	n := 0
	for {
		select {
		case u := <-r.ch:
			apply(u)
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued updates.
func (r *Relay) Len() int {
	return len(r.ch)
}
