//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package harness

import "testing"

const identityCircuit = `
term x
output x

x
`

const andCircuit = `
term a
term b
and a b g0
output g0
a
b
`

const lessThanCircuit = `
term a0
term a1
term b0
term b1
not a0 na0
not a1 na1
not b0 nb0
not b1 nb1
and na1 b1 lt1
and a1 b1 eq1a
and na1 nb1 eq1b
or eq1a eq1b eq1
and na0 b0 lt0
and eq1 lt0 lt0eq1
or lt1 lt0eq1 out
output out
a0 a1
b0 b1
`

// allAssignments enumerates every Boolean assignment of names.
func allAssignments(names []string) []map[string]bool {
	if len(names) == 0 {
		return []map[string]bool{{}}
	}
	rest := allAssignments(names[1:])
	var out []map[string]bool
	for _, v := range []bool{false, true} {
		for _, r := range rest {
			m := make(map[string]bool, len(names))
			m[names[0]] = v
			for k, rv := range r {
				m[k] = rv
			}
			out = append(out, m)
		}
	}
	return out
}

func split(m map[string]bool, aNames, bNames []string) (map[string]bool, map[string]bool) {
	a := make(map[string]bool, len(aNames))
	for _, n := range aNames {
		a[n] = m[n]
	}
	b := make(map[string]bool, len(bNames))
	for _, n := range bNames {
		b[n] = m[n]
	}
	return a, b
}

func crossCheck(t *testing.T, src string, aNames, bNames []string) {
	t.Helper()
	for _, full := range allAssignments(append(append([]string{}, aNames...), bNames...)) {
		aBits, bBits := split(full, aNames, bNames)

		want, err := FullAssignment(src, full)
		if err != nil {
			t.Fatalf("FullAssignment(%v): %v", full, err)
		}
		got, err := Run(src, aBits, bBits)
		if err != nil {
			t.Fatalf("Run(%v): %v", full, err)
		}
		if got != want {
			t.Errorf("assignment %v: protocol=%v direct=%v", full, got, want)
		}
	}
}

func TestIdentityCircuitExhaustive(t *testing.T) {
	crossCheck(t, identityCircuit, nil, []string{"x"})
}

func TestAndCircuitExhaustive(t *testing.T) {
	crossCheck(t, andCircuit, []string{"a"}, []string{"b"})
}

func TestLessThanCircuitExhaustive(t *testing.T) {
	crossCheck(t, lessThanCircuit, []string{"a0", "a1"}, []string{"b0", "b1"})
}
