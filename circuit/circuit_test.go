//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import "testing"

func mkCircuit() (*Circuit, *Terminal, *Terminal) {
	a := &Terminal{Name: "a"}
	b := &Terminal{Name: "b"}
	and := &Gate{Kind: AND, Inputs: []Node{a, b}, ID: "g0"}
	return &Circuit{Terminals: []*Terminal{a, b}, Output: and}, a, b
}

func TestSimplifyFullyDetermined(t *testing.T) {
	c, a, b := mkCircuit()
	out := c.Simplify(Assignment{a: true, b: true})
	v, ok := out.(Bool)
	if !ok || !bool(v) {
		t.Fatalf("got %v, want Bool(true)", out)
	}

	out = c.Simplify(Assignment{a: true, b: false})
	v, ok = out.(Bool)
	if !ok || bool(v) {
		t.Fatalf("got %v, want Bool(false)", out)
	}
}

func TestSimplifyPartial(t *testing.T) {
	c, a, _ := mkCircuit()

	// AND short-circuits to false when either input is false,
	// regardless of the other.
	out := c.Simplify(Assignment{a: false})
	v, ok := out.(Bool)
	if !ok || bool(v) {
		t.Fatalf("got %v, want Bool(false)", out)
	}

	// AND with a true constant collapses to the other (live) input.
	out = c.Simplify(Assignment{a: true})
	term, ok := out.(*Terminal)
	if !ok || term.Name != "b" {
		t.Fatalf("got %v, want terminal b", out)
	}
}

func TestSimplifyIsPure(t *testing.T) {
	c, a, b := mkCircuit()
	assignment := Assignment{a: true}
	first := c.Simplify(assignment)
	second := c.Simplify(assignment)
	if first.String() != second.String() {
		t.Fatalf("simplify not pure: %v != %v", first, second)
	}
	// The original circuit's output node must not have been mutated.
	gate, ok := c.Output.(*Gate)
	if !ok || gate.Kind != AND || len(gate.Inputs) != 2 {
		t.Fatalf("circuit output mutated: %v", c.Output)
	}
	if gate.Inputs[0] != Node(a) || gate.Inputs[1] != Node(b) {
		t.Fatalf("circuit inputs mutated")
	}
}

func TestSimplifyNotOrBuffer(t *testing.T) {
	a := &Terminal{Name: "a"}
	not := &Gate{Kind: NOT, Inputs: []Node{a}, ID: "g0"}
	c := &Circuit{Terminals: []*Terminal{a}, Output: not}

	out := c.Simplify(Assignment{a: true})
	if v, ok := out.(Bool); !ok || bool(v) {
		t.Fatalf("got %v, want Bool(false)", out)
	}

	buf := &Gate{Kind: BUFFER, Inputs: []Node{a}, ID: "g1"}
	c2 := &Circuit{Terminals: []*Terminal{a}, Output: buf}
	out = c2.Simplify(nil)
	term, ok := out.(*Terminal)
	if !ok || term != a {
		t.Fatalf("got %v, want terminal a", out)
	}
}

func TestOrShortCircuit(t *testing.T) {
	a := &Terminal{Name: "a"}
	b := &Terminal{Name: "b"}
	or := &Gate{Kind: OR, Inputs: []Node{a, b}, ID: "g0"}
	c := &Circuit{Terminals: []*Terminal{a, b}, Output: or}

	out := c.Simplify(Assignment{a: true})
	if v, ok := out.(Bool); !ok || !bool(v) {
		t.Fatalf("got %v, want Bool(true)", out)
	}

	out = c.Simplify(Assignment{a: false})
	term, ok := out.(*Terminal)
	if !ok || term != b {
		t.Fatalf("got %v, want terminal b", out)
	}
}

func TestStats(t *testing.T) {
	c, _, _ := mkCircuit()
	s := c.Stats()
	if s.Terminals != 2 || s.AND != 1 || s.OR != 0 || s.NOT != 0 || s.BUFFER != 0 {
		t.Fatalf("got %+v", s)
	}
}

func TestSortedTerminals(t *testing.T) {
	b := &Terminal{Name: "b"}
	a := &Terminal{Name: "a"}
	c := &Terminal{Name: "c"}
	sorted := SortedTerminals([]*Terminal{b, c, a})
	want := []string{"a", "b", "c"}
	for i, t2 := range sorted {
		if t2.Name != want[i] {
			t.Fatalf("got %v, want %v", sorted, want)
		}
	}
}
