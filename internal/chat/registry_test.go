package chat

import (
	"reflect"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultName},
		{"   ", DefaultName},
		{"alice", "alice"},
		{"  bob  ", "bob"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeInterests(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims and drops empties", []string{" music ", "", "  "}, []string{"music"}},
		{"dedupes keeping order", []string{"music", "hiking", "music"}, []string{"music", "hiking"}},
		{"caps at five", []string{"a", "b", "c", "d", "e", "f", "g"}, []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeInterests(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeInterests(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRegistryIdentityLatestWins(t *testing.T) {
	r := NewRegistry()
	c := &Client{ID: "c1", State: StateConnected}
	r.Add(c)

	r.SetIdentity(c, "", nil)
	if c.Name != DefaultName {
		t.Errorf("Name = %q, want placeholder %q", c.Name, DefaultName)
	}
	if c.State != StateIdentified {
		t.Errorf("State = %v, want StateIdentified", c.State)
	}

	r.SetIdentity(c, "alice", []string{"music"})
	r.SetIdentity(c, "alicia", []string{"hiking"})
	if c.Name != "alicia" {
		t.Errorf("Name = %q, want latest declaration", c.Name)
	}
	if !reflect.DeepEqual(c.Interests, []string{"hiking"}) {
		t.Errorf("Interests = %v, want latest declaration", c.Interests)
	}
}

func TestRegistryAddGetRemove(t *testing.T) {
	r := NewRegistry()
	c := &Client{ID: "c1"}
	r.Add(c)

	if got, ok := r.Get("c1"); !ok || got != c {
		t.Fatal("expected to find registered connection")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	r.Remove("c1")
	r.Remove("c1") // idempotent
	if _, ok := r.Get("c1"); ok {
		t.Fatal("connection should be gone after Remove")
	}
}
