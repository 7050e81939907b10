package chat

import "testing"

func TestWaitQueueFIFO(t *testing.T) {
	q := NewWaitQueue()
	a := &Client{ID: "a"}
	b := &Client{ID: "b"}
	c := &Client{ID: "c"}

	q.Push(a)
	q.Push(b)
	q.Push(c)

	for _, want := range []*Client{a, b, c} {
		if got := q.Pop(); got != want {
			t.Fatalf("Pop() = %v, want %v", got, want)
		}
	}
	if q.Pop() != nil {
		t.Fatal("Pop on empty queue should return nil")
	}
}

func TestWaitQueueAtMostOnce(t *testing.T) {
	q := NewWaitQueue()
	a := &Client{ID: "a"}

	if !q.Push(a) {
		t.Fatal("first Push should succeed")
	}
	if q.Push(a) {
		t.Fatal("second Push of the same connection should be refused")
	}
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
}

func TestWaitQueueRemoveIdempotent(t *testing.T) {
	q := NewWaitQueue()
	a := &Client{ID: "a"}
	b := &Client{ID: "b"}
	q.Push(a)
	q.Push(b)

	if !q.Remove(a) {
		t.Fatal("Remove of a queued connection should report true")
	}
	if q.Remove(a) {
		t.Fatal("second Remove should report false")
	}
	if q.Contains(a) {
		t.Fatal("removed connection must not remain queued")
	}
	if got := q.Pop(); got != b {
		t.Fatalf("Pop() = %v, want b after a removed", got)
	}
}
