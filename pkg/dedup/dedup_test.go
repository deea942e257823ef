package dedup

import (
	"reflect"
	"testing"

	"github.com/openscreening/cslimport/pkg/csl"
)

func TestKeyNormalizes(t *testing.T) {
	a := Key("  ACME Corp ", "85 FR 1234")
	b := Key("acme corp", " 85 fr 1234 ")
	if a != b {
		t.Fatalf("normalized keys differ: %s vs %s", a, b)
	}
	if len(a) != 56 {
		t.Fatalf("key length = %d, want 56 hex chars", len(a))
	}
	if a == Key("acme corp", "85 fr 9999") {
		t.Fatal("distinct disambiguators must yield distinct keys")
	}
}

func TestAccumulatorMergesSameKey(t *testing.T) {
	acc := NewAccumulator()

	first := Row{"Name": "Acme", "Action": "Denied"}
	second := Row{"Name": "Acme", "Action": "OVERWRITTEN"}

	k := Key("Acme")
	acc.Add(k, first, &csl.Address{Address: csl.Ptr("1 Main St")}, "ISA")
	acc.Add(k, second, &csl.Address{Address: csl.Ptr("2 Side St")}, "ISA", "EAR")

	entries := acc.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.First["Action"] != "Denied" {
		t.Fatalf("first-seen row must win scalars, got %q", e.First["Action"])
	}
	if len(e.Addresses) != 2 {
		t.Fatalf("got %d addresses, want 2", len(e.Addresses))
	}
	if !reflect.DeepEqual(e.Programs, []string{"ISA", "EAR"}) {
		t.Fatalf("programs = %v, want [ISA EAR]", e.Programs)
	}
}

func TestAccumulatorKeepsEncounterOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(Key("zeta"), Row{"Name": "zeta"}, nil)
	acc.Add(Key("alpha"), Row{"Name": "alpha"}, nil)
	acc.Add(Key("zeta"), Row{"Name": "zeta"}, nil)

	entries := acc.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].First["Name"] != "zeta" || entries[1].First["Name"] != "alpha" {
		t.Fatalf("entries out of order: %q then %q", entries[0].First["Name"], entries[1].First["Name"])
	}
}
