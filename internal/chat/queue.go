package chat

// WaitQueue is the ordered pool of connections seeking a partner. Insertion
// order is match priority: the oldest waiter is matched first. A connection
// appears at most once; removal is idempotent.
//
// Only the hub run loop touches the queue, so there is no locking here.
type WaitQueue struct {
	waiters []*Client
}

// NewWaitQueue creates an empty waiting queue.
func NewWaitQueue() *WaitQueue {
	return &WaitQueue{}
}

// Push appends a connection to the back of the queue. Returns false if the
// connection is already queued.
func (q *WaitQueue) Push(c *Client) bool {
	if q.Contains(c) {
		return false
	}
	q.waiters = append(q.waiters, c)
	return true
}

// Pop removes and returns the oldest waiter, or nil if the queue is empty.
func (q *WaitQueue) Pop() *Client {
	if len(q.waiters) == 0 {
		return nil
	}
	head := q.waiters[0]
	q.waiters[0] = nil
	q.waiters = q.waiters[1:]
	return head
}

// Remove deletes a connection from the queue wherever it sits. Returns false
// if the connection was not queued.
func (q *WaitQueue) Remove(c *Client) bool {
	for i, w := range q.waiters {
		if w == c {
			q.waiters = append(q.waiters[:i], q.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the connection is currently queued.
func (q *WaitQueue) Contains(c *Client) bool {
	for _, w := range q.waiters {
		if w == c {
			return true
		}
	}
	return false
}

// Len returns the number of waiting connections.
func (q *WaitQueue) Len() int {
	return len(q.waiters)
}
