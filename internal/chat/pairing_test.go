package chat

import (
	"reflect"
	"testing"
)

func TestPairTableSymmetry(t *testing.T) {
	pt := NewPairTable()
	a := &Client{ID: "a"}
	b := &Client{ID: "b"}

	p := pt.Form(a, b)

	pa, ok := pt.Lookup("a")
	if !ok || pa != p {
		t.Fatal("a should resolve to the pairing")
	}
	pb, ok := pt.Lookup("b")
	if !ok || pb != p {
		t.Fatal("b should resolve to the same pairing")
	}
	if p.PartnerOf(a) != b || p.PartnerOf(b) != a {
		t.Fatal("PartnerOf must be symmetric")
	}
	if pt.Len() != 1 {
		t.Fatalf("Len = %d, want 1", pt.Len())
	}
}

func TestPairTableDropRemovesBothEntries(t *testing.T) {
	pt := NewPairTable()
	a := &Client{ID: "a"}
	b := &Client{ID: "b"}
	p := pt.Form(a, b)

	pt.Drop(p)
	pt.Drop(p) // idempotent

	if _, ok := pt.Lookup("a"); ok {
		t.Fatal("a entry should be gone")
	}
	if _, ok := pt.Lookup("b"); ok {
		t.Fatal("b entry should be gone")
	}
	if pt.Len() != 0 {
		t.Fatalf("Len = %d, want 0", pt.Len())
	}
}

func TestRoomScopeNeverReused(t *testing.T) {
	pt := NewPairTable()
	a := &Client{ID: "a"}
	b := &Client{ID: "b"}

	first := pt.Form(a, b)
	pt.Drop(first)
	second := pt.Form(a, b)

	if first.RoomID == second.RoomID {
		t.Fatalf("room scope %q reused for a second pairing of the same connections", first.RoomID)
	}
}

func TestMutualInterests(t *testing.T) {
	tests := []struct {
		name      string
		requester []string
		partner   []string
		want      []string
	}{
		{"single overlap", []string{"hiking", "coding"}, []string{"music", "hiking"}, []string{"hiking"}},
		{"order follows requester", []string{"b", "a"}, []string{"a", "b"}, []string{"b", "a"}},
		{"disjoint", []string{"x"}, []string{"y"}, []string{}},
		{"both empty", nil, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := NewPairTable()
			a := &Client{ID: "a", Interests: tt.requester}
			b := &Client{ID: "b", Interests: tt.partner}
			p := pt.Form(a, b)
			if !reflect.DeepEqual(p.MutualInterests, tt.want) {
				t.Errorf("MutualInterests = %v, want %v", p.MutualInterests, tt.want)
			}
		})
	}
}
