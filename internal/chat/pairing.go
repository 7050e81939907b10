package chat

import "fmt"

// Pairing is the symmetric relationship between exactly two connections,
// with a room scope that bounds message delivery to those two and nobody
// else, and the mutual interests computed when the pairing formed.
type Pairing struct {
	RoomID          string
	A               *Client
	B               *Client
	MutualInterests []string
}

// PartnerOf returns the other side of the pairing.
func (p *Pairing) PartnerOf(c *Client) *Client {
	if p.A == c {
		return p.B
	}
	return p.A
}

// PairTable is the authoritative connection -> pairing mapping. Both sides
// of a pairing are recorded together and removed together; a connection
// belongs to at most one pairing at a time.
type PairTable struct {
	byConn map[string]*Pairing
	seq    uint64
}

// NewPairTable creates an empty pairing table.
func NewPairTable() *PairTable {
	return &PairTable{byConn: make(map[string]*Pairing)}
}

// Form creates a pairing between the requester and its popped partner,
// recording both table entries in one step. Mutual interests preserve the
// requester's declaration order. The room scope folds in a monotonic
// sequence number so it is never reused, even if the same two connections
// pair again later.
func (t *PairTable) Form(requester, partner *Client) *Pairing {
	t.seq++
	p := &Pairing{
		RoomID:          fmt.Sprintf("%s.%s.%d", requester.ID, partner.ID, t.seq),
		A:               requester,
		B:               partner,
		MutualInterests: intersectInterests(requester.Interests, partner.Interests),
	}
	t.byConn[requester.ID] = p
	t.byConn[partner.ID] = p
	return p
}

// Lookup returns the pairing a connection belongs to, if any.
func (t *PairTable) Lookup(id string) (*Pairing, bool) {
	p, ok := t.byConn[id]
	return p, ok
}

// Drop removes both entries of a pairing. Idempotent: dropping an already
// removed pairing is a no-op.
func (t *PairTable) Drop(p *Pairing) {
	delete(t.byConn, p.A.ID)
	delete(t.byConn, p.B.ID)
}

// Len returns the number of active pairings.
func (t *PairTable) Len() int {
	return len(t.byConn) / 2
}

// intersectInterests computes the ordered set intersection of the two
// declared interest lists, keeping the first list's order. Inputs are
// already normalized (deduped) by the registry.
func intersectInterests(a, b []string) []string {
	other := make(map[string]bool, len(b))
	for _, tag := range b {
		other[tag] = true
	}

	mutual := make([]string, 0, len(a))
	for _, tag := range a {
		if other[tag] {
			mutual = append(mutual, tag)
		}
	}
	return mutual
}
