//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"

	"github.com/markkurossi/yao2pc/mpcerr"
)

// GarbledCircuit is the output of garbling a circuit under the
// garbler's partial assignment: a root (a GarbledGate, or a bare Bool
// when the garbler's assignment alone determines the output) plus the
// ordered list of terminals that remain live, i.e. evaluator-owned.
type GarbledCircuit struct {
	Root      GarbledRoot
	Terminals []*Terminal
}

// Garble constructs a garbled circuit from c under the garbler's
// assignment and a set of freshly generated label pairs, one per
// evaluator-owned (live) terminal. Labels must contain an entry for
// every terminal in c.Terminals that is not a key of assignment.
func Garble(rand io.Reader, c *Circuit, assignment Assignment, labels map[*Terminal]LabelPair) (*GarbledCircuit, error) {
	var live []*Terminal
	for _, t := range c.Terminals {
		if _, assigned := assignment[t]; !assigned {
			if _, ok := labels[t]; !ok {
				return nil, fmt.Errorf("%w: no label pair for live terminal %q",
					mpcerr.ErrProgrammer, t.Name)
			}
			live = append(live, t)
		}
	}

	simplified := c.Simplify(assignment)

	if b, ok := simplified.(Bool); ok {
		return &GarbledCircuit{Root: b, Terminals: live}, nil
	}

	root := simplified
	if _, ok := root.(*Gate); !ok {
		// The simplified output collapsed to a bare live terminal
		// (e.g. an identity circuit). Wrap it in an identity BUFFER
		// gate so the garbled root is always a gate whose rows
		// decrypt to a plaintext bit.
		root = &Gate{Kind: BUFFER, Inputs: []Node{root}, ID: "__root"}
	}

	gate, _, err := garbleNode(rand, root, labels, true)
	if err != nil {
		return nil, err
	}
	gg, ok := gate.(*GarbledGate)
	if !ok {
		return nil, fmt.Errorf("%w: root did not garble to a gate", mpcerr.ErrProgrammer)
	}

	return &GarbledCircuit{Root: gg, Terminals: live}, nil
}

// garbleNode recursively garbles one node, returning the garbled
// value (Bool, *Terminal, or *GarbledGate) and, for non-constant
// non-root values, the pair of labels encoding its output wire.
func garbleNode(rand io.Reader, n Node, labels map[*Terminal]LabelPair, isRoot bool) (interface{}, *LabelPair, error) {
	switch v := n.(type) {
	case Bool:
		return v, nil, nil

	case *Terminal:
		pair, ok := labels[v]
		if !ok {
			return nil, nil, fmt.Errorf("%w: terminal %q has no label pair",
				mpcerr.ErrProgrammer, v.Name)
		}
		return v, &pair, nil

	case *Gate:
		inputs := make([]garbleInput, len(v.Inputs))
		for i, in := range v.Inputs {
			val, pair, err := garbleNode(rand, in, labels, false)
			if err != nil {
				return nil, nil, err
			}
			if b, ok := val.(Bool); ok {
				bv := bool(b)
				inputs[i] = garbleInput{constVal: &bv}
				continue
			}
			node, ok := val.(GarbledNode)
			if !ok {
				return nil, nil, fmt.Errorf("%w: unexpected garbled value type",
					mpcerr.ErrProgrammer)
			}
			inputs[i] = garbleInput{node: node, labels: *pair}
		}

		var pout *LabelPair
		if !isRoot {
			pair, err := NewLabelPair(rand)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", mpcerr.ErrCrypto, err)
			}
			pout = &pair
		}

		gate, err := garble(rand, v.Kind, inputs, pout)
		if err != nil {
			return nil, nil, err
		}
		return gate, pout, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown node type in garble", mpcerr.ErrProgrammer)
	}
}

// Evaluate walks the garbled circuit, substituting the evaluator's
// received labels at each live terminal, and returns the recovered
// output bit.
func (gc *GarbledCircuit) Evaluate(received map[*Terminal]Label) (bool, error) {
	switch root := gc.Root.(type) {
	case Bool:
		return bool(root), nil
	case *GarbledGate:
		val, err := evalNode(root, received)
		if err != nil {
			return false, err
		}
		b, ok := val.(bool)
		if !ok {
			return false, fmt.Errorf("%w: root gate did not decrypt to a bit",
				mpcerr.ErrProgrammer)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: unknown garbled circuit root", mpcerr.ErrProgrammer)
	}
}

func evalNode(n GarbledNode, received map[*Terminal]Label) (interface{}, error) {
	switch v := n.(type) {
	case *Terminal:
		l, ok := received[v]
		if !ok {
			return nil, fmt.Errorf("%w: terminal %q", mpcerr.ErrMissingTerminal, v.Name)
		}
		return l, nil

	case *GarbledGate:
		pin := make([]Label, len(v.Inputs))
		for i, child := range v.Inputs {
			val, err := evalNode(child, received)
			if err != nil {
				return nil, err
			}
			l, ok := val.(Label)
			if !ok {
				return nil, fmt.Errorf("%w: non-root gate's child produced a bit, not a label",
					mpcerr.ErrProgrammer)
			}
			pin[i] = l
		}
		return v.Evaluate(pin)

	default:
		return nil, fmt.Errorf("%w: unknown garbled node type", mpcerr.ErrProgrammer)
	}
}
