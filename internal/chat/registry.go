package chat

import "strings"

// DefaultName is used when a client declares no display name.
const DefaultName = "Stranger"

// MaxInterests caps how many interest tags a client may declare.
const MaxInterests = 5

// Registry tracks every live connection by its ID. It is pure bookkeeping:
// entries are added on transport connect and removed on disconnect, and the
// hub run loop is the only writer.
type Registry struct {
	conns map[string]*Client
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Client)}
}

// Add registers a connection. Identity fields stay empty until the client
// declares them with its first find-partner message.
func (r *Registry) Add(c *Client) {
	r.conns[c.ID] = c
}

// Get looks up a connection by ID.
func (r *Registry) Get(id string) (*Client, bool) {
	c, ok := r.conns[id]
	return c, ok
}

// Remove drops a connection record. Idempotent.
func (r *Registry) Remove(id string) {
	delete(r.conns, id)
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.conns)
}

// SetIdentity stores the declared display name and interests on the
// connection. Callable repeatedly; the latest declaration wins. Malformed
// input is normalized, never rejected.
func (r *Registry) SetIdentity(c *Client, name string, interests []string) {
	c.Name = NormalizeName(name)
	c.Interests = NormalizeInterests(interests)
	if c.State == StateConnected {
		c.State = StateIdentified
	}
}

// NormalizeName substitutes the placeholder name for empty input.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}

// NormalizeInterests trims, drops empties, removes duplicates while keeping
// the declared order, and caps the list at MaxInterests.
func NormalizeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	seen := make(map[string]bool, len(interests))

	for _, tag := range interests {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if len(out) == MaxInterests {
			break
		}
	}

	return out
}
