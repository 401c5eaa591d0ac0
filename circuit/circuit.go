//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import "sort"

// Circuit is a Boolean circuit: an ordered list of input terminals
// plus a single output node (a Terminal or a Gate). The circuit is a
// DAG but is walked as a tree; a gate referenced from two places is
// simplified/garbled once per occurrence.
type Circuit struct {
	Terminals []*Terminal
	Output    Node
}

// Assignment maps a subset of a circuit's terminals to Boolean
// values. Terminals not present are left symbolic.
type Assignment map[*Terminal]bool

// TerminalByName looks up one of the circuit's terminals by name.
func (c *Circuit) TerminalByName(name string) *Terminal {
	for _, t := range c.Terminals {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// SortedTerminals returns the circuit's terminals restricted to the
// given set, in canonical (lexicographic by name) order. This is the
// ordering the protocol driver uses to line up OT batches.
func SortedTerminals(terminals []*Terminal) []*Terminal {
	out := make([]*Terminal, len(terminals))
	copy(out, terminals)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Simplify performs constant folding of the circuit under a partial
// assignment. It is pure: it does not mutate the circuit, and two
// calls with equal arguments return equal results.
func (c *Circuit) Simplify(assignment Assignment) Node {
	return simplifyNode(c.Output, assignment)
}

func simplifyNode(n Node, assignment Assignment) Node {
	switch v := n.(type) {
	case Bool:
		return v
	case *Terminal:
		if val, ok := assignment[v]; ok {
			return Bool(val)
		}
		return v
	case *Gate:
		inputs := make([]Node, len(v.Inputs))
		for i, in := range v.Inputs {
			inputs[i] = simplifyNode(in, assignment)
		}
		return simplifyGate(v.Kind, v.ID, inputs)
	default:
		panic("circuit: unknown node type in simplify")
	}
}

// simplifyGate applies the constant-folding laws for one gate given
// already-simplified inputs. It returns a Bool when the gate fully
// reduces, otherwise a freshly constructed Gate with the simplified
// inputs (short-circuit rules applied for AND/OR).
func simplifyGate(kind Kind, id string, inputs []Node) Node {
	switch kind {
	case NOT:
		if b, ok := inputs[0].(Bool); ok {
			return Bool(!b)
		}
		return &Gate{Kind: NOT, Inputs: inputs, ID: id}
	case BUFFER:
		if b, ok := inputs[0].(Bool); ok {
			return b
		}
		return &Gate{Kind: BUFFER, Inputs: inputs, ID: id}
	case AND:
		a, aIsBool := inputs[0].(Bool)
		b, bIsBool := inputs[1].(Bool)
		switch {
		case aIsBool && bIsBool:
			return Bool(bool(a) && bool(b))
		case aIsBool:
			if !bool(a) {
				return Bool(false)
			}
			return inputs[1]
		case bIsBool:
			if !bool(b) {
				return Bool(false)
			}
			return inputs[0]
		default:
			return &Gate{Kind: AND, Inputs: inputs, ID: id}
		}
	case OR:
		a, aIsBool := inputs[0].(Bool)
		b, bIsBool := inputs[1].(Bool)
		switch {
		case aIsBool && bIsBool:
			return Bool(bool(a) || bool(b))
		case aIsBool:
			if bool(a) {
				return Bool(true)
			}
			return inputs[1]
		case bIsBool:
			if bool(b) {
				return Bool(true)
			}
			return inputs[0]
		default:
			return &Gate{Kind: OR, Inputs: inputs, ID: id}
		}
	default:
		panic("circuit: unknown gate kind in simplify")
	}
}

// Stats summarizes a circuit's composition: the number of terminals
// and the number of gates of each kind. Used for --verbose /
// diagnostic output only; it has no bearing on simplify/garble
// semantics.
type Stats struct {
	Terminals int
	NOT       int
	BUFFER    int
	AND       int
	OR        int
}

// Stats walks the circuit and counts terminals and gates by kind.
// Shared subexpressions are counted once per occurrence, matching the
// tree-walk semantics used everywhere else in this package.
func (c *Circuit) Stats() Stats {
	s := Stats{Terminals: len(c.Terminals)}
	var walk func(n Node)
	walk = func(n Node) {
		g, ok := n.(*Gate)
		if !ok {
			return
		}
		switch g.Kind {
		case NOT:
			s.NOT++
		case BUFFER:
			s.BUFFER++
		case AND:
			s.AND++
		case OR:
			s.OR++
		}
		for _, in := range g.Inputs {
			walk(in)
		}
	}
	walk(c.Output)
	return s
}
