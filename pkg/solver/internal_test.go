package solver

import (
	"reflect"
	"testing"

	"github.com/matzehuels/lewis/pkg/chem"
)

func TestCloseRing(t *testing.T) {
	const start, end = 10, 11
	tests := []struct {
		name  string
		bonds []chem.Bond
		want  []chem.Bond
		ep    chem.Endpoints
		ok    bool
	}{
		{
			name:  "splices boundary bonds",
			bonds: []chem.Bond{{From: start, To: 0, Order: 1}, {From: 0, To: 1, Order: 1}, {From: 1, To: 2, Order: 1}, {From: end, To: 2, Order: 1}},
			want:  []chem.Bond{{From: 0, To: 2, Order: 1}, {From: 0, To: 1, Order: 1}, {From: 1, To: 2, Order: 1}},
			ep:    chem.Endpoints{Start: 0, End: 2},
			ok:    true,
		},
		{
			name:  "self-bond",
			bonds: []chem.Bond{{From: start, To: 0, Order: 1}, {From: end, To: 0, Order: 1}, {From: 1, To: 0, Order: 2}},
		},
		{
			name:  "duplicate pair",
			bonds: []chem.Bond{{From: start, To: 0, Order: 1}, {From: 0, To: 1, Order: 1}, {From: end, To: 1, Order: 1}},
		},
		{
			name:  "boundaries bonded together",
			bonds: []chem.Bond{{From: start, To: end, Order: 1}, {From: 0, To: 1, Order: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ep, ok := closeRing(tt.bonds, start, end)
			if ok != tt.ok {
				t.Fatalf("closeRing ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("closeRing bonds = %v, want %v", got, tt.want)
			}
			if ep != tt.ep {
				t.Errorf("closeRing endpoints = %v, want %v", ep, tt.ep)
			}
		})
	}
}

func TestRemoveSinks(t *testing.T) {
	atoms := []chem.Atom{{ID: 0, Element: "O", Valence: 6}, {ID: 1, Element: "H", Valence: 7}}
	sinks := map[chem.ID]bool{2: true}

	out, charges, ok := removeSinks([]chem.Bond{{From: 1, To: 0, Order: 1}, {From: 2, To: 0, Order: 1}}, sinks, atoms)
	if !ok {
		t.Fatal("removeSinks failed")
	}
	if !reflect.DeepEqual(out, []chem.Bond{{From: 1, To: 0, Order: 1}}) {
		t.Errorf("bonds = %v", out)
	}
	if charges[0] != -1 || len(charges) != 1 {
		t.Errorf("charges = %v, want map[0:-1]", charges)
	}

	// Nothing left: a placeholder on the charged atom.
	out, charges, ok = removeSinks([]chem.Bond{{From: 2, To: 1, Order: 1}}, sinks, atoms)
	if !ok || len(out) != 1 || !out[0].IsPlaceholder() || out[0].From != 1 {
		t.Errorf("placeholder = %v, %v", out, ok)
	}
	if charges[1] != -1 {
		t.Errorf("charges = %v, want map[1:-1]", charges)
	}

	// Sink to sink is rejected.
	two := map[chem.ID]bool{2: true, 3: true}
	if _, _, ok := removeSinks([]chem.Bond{{From: 2, To: 3, Order: 1}}, two, atoms); ok {
		t.Error("sink-sink bond should be rejected")
	}
}

func TestFunnelSources(t *testing.T) {
	atoms := []chem.Atom{
		{ID: 0, Element: "N", Valence: 5},
		{ID: 1, Element: "H", Valence: 7},
		{ID: 2, Element: "H", Valence: 7},
		{ID: 3, Element: "H", Valence: 7},
		{ID: 4, Element: "H", Valence: 7},
	}
	const src = 5
	bonds := []chem.Bond{
		{From: 3, To: 0, Order: 1},
		{From: 4, To: 0, Order: 1},
		{From: 1, To: src, Order: 1},
		{From: 2, To: src, Order: 1},
		{From: src, To: 0, Order: 1},
	}
	out, charges, ok := funnelSources(bonds, []chem.ID{src}, atoms)
	if !ok {
		t.Fatal("funnelSources failed")
	}
	if len(out) != 4 {
		t.Fatalf("bonds = %v, want four", out)
	}
	for _, b := range out {
		if !b.Touches(0) || b.Order != 1 {
			t.Errorf("bond %v should be a single bond to nitrogen", b)
		}
	}
	if charges[0] != 1 {
		t.Errorf("charges = %v, want nitrogen +1", charges)
	}
}

func TestConnectMerges(t *testing.T) {
	bonds := []chem.Bond{{From: 0, To: 1, Order: 1}}
	got, ok := connect(bonds, 1, 0, 1)
	if !ok || len(got) != 1 || got[0].Order != 2 {
		t.Errorf("connect = %v, %v, want one double bond", got, ok)
	}
	if _, ok := connect([]chem.Bond{{From: 0, To: 1, Order: 3}}, 0, 1, 1); ok {
		t.Error("connect should refuse to exceed a triple bond")
	}
}

func TestStarRejectsHighOrders(t *testing.T) {
	// Two carbons would need a quadruple bond.
	m := chem.NewMolecule([]chem.Atom{{ID: 0, Element: "C", Valence: 4}, {ID: 1, Element: "C", Valence: 4}})
	if _, ok := star(m, 0); ok {
		t.Error("star should reject a quadruple bond")
	}
}
