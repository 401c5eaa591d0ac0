//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/markkurossi/yao2pc/mpcerr"
	"golang.org/x/crypto/salsa20"
)

// GarbledNode is a node of a garbled circuit: either a live Terminal
// (the evaluator substitutes its received label at evaluation time)
// or an internal GarbledGate.
type GarbledNode interface {
	isGarbledNode()
}

func (*Terminal) isGarbledNode() {}

// GarbledGate is the encrypted truth table of one gate, keyed by the
// SHA-256 hash of its live inputs' label concatenation. Constant
// (garbler-assigned) inputs are folded into the table at construction
// time and do not appear in Inputs.
type GarbledGate struct {
	Kind   Kind
	Inputs []GarbledNode
	rows   map[[sha256.Size]byte]garbledRow
}

func (*GarbledGate) isGarbledNode() {}

type garbledRow struct {
	ciphertext []byte
	nonce      [8]byte
}

// GarbledRoot is the root of a garbled circuit: either a Bool, when
// the garbler's assignment alone already determines the output, or a
// *GarbledGate whose rows decrypt to a single plaintext output byte.
type GarbledRoot interface {
	isGarbledRoot()
}

func (Bool) isGarbledRoot()         {}
func (*GarbledGate) isGarbledRoot() {}

// garbleInput describes one input to a gate being garbled.
type garbleInput struct {
	constVal *bool       // non-nil iff this input is constant-folded
	node     GarbledNode // valid iff constVal == nil
	labels   LabelPair   // valid iff constVal == nil
}

// garble constructs a garbled gate from its kind, its (already
// garbled) inputs, and an optional pair of output labels. pout == nil
// marks the root gate: its rows decrypt to the plaintext output bit
// instead of an output label.
func garble(rand io.Reader, kind Kind, inputs []garbleInput, pout *LabelPair) (*GarbledGate, error) {
	n := len(inputs)
	if n != kind.Arity() {
		return nil, fmt.Errorf("%w: %s gate garbled with %d inputs, want %d",
			mpcerr.ErrProgrammer, kind, n, kind.Arity())
	}

	assignments := make([]*bool, n)
	for i, in := range inputs {
		assignments[i] = in.constVal
	}

	reduced := reduceTruthTable(kind.TruthTable(), assignments)

	var liveIdx []int
	for i, in := range inputs {
		if in.constVal == nil {
			liveIdx = append(liveIdx, i)
		}
	}
	k := len(liveIdx)
	if k == 0 {
		return nil, fmt.Errorf("%w: gate has no live inputs after folding",
			mpcerr.ErrProgrammer)
	}

	gate := &GarbledGate{
		Kind: kind,
		rows: make(map[[sha256.Size]byte]garbledRow, 1<<uint(k)),
	}
	for _, i := range liveIdx {
		gate.Inputs = append(gate.Inputs, inputs[i].node)
	}

	for mask := 0; mask < (1 << uint(k)); mask++ {
		h := sha256.New()
		for i := 0; i < k; i++ {
			bit := (mask >> uint(i)) & 1
			label := inputs[liveIdx[i]].labels.Select(bit == 1)
			h.Write(label.Bytes())
		}
		var key [sha256.Size]byte
		copy(key[:], h.Sum(nil))

		var plaintext []byte
		if pout == nil {
			if reduced[mask] {
				plaintext = []byte{0x01}
			} else {
				plaintext = []byte{0x00}
			}
		} else {
			out := pout.Select(reduced[mask])
			plaintext = append([]byte(nil), out.Bytes()...)
		}

		var nonce [8]byte
		if _, err := io.ReadFull(rand, nonce[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrCrypto, err)
		}
		ciphertext := make([]byte, len(plaintext))
		salsa20.XORKeyStream(ciphertext, plaintext, nonce[:], &key)

		gate.rows[key] = garbledRow{ciphertext: ciphertext, nonce: nonce}
	}

	return gate, nil
}

// Evaluate decrypts the row keyed by the hash of pin (the labels
// received for this gate's live inputs, in input order) and returns
// either a bool (root gate) or a Label (intermediate gate).
func (g *GarbledGate) Evaluate(pin []Label) (interface{}, error) {
	if len(pin) != len(g.Inputs) {
		return nil, fmt.Errorf("%w: gate expects %d input labels, got %d",
			mpcerr.ErrProgrammer, len(g.Inputs), len(pin))
	}

	h := sha256.New()
	for _, l := range pin {
		h.Write(l.Bytes())
	}
	var key [sha256.Size]byte
	copy(key[:], h.Sum(nil))

	row, ok := g.rows[key]
	if !ok {
		return nil, fmt.Errorf("%w: no row for input labels", mpcerr.ErrInvalidLabel)
	}

	plaintext := make([]byte, len(row.ciphertext))
	salsa20.XORKeyStream(plaintext, row.ciphertext, row.nonce[:], &key)

	switch len(plaintext) {
	case 1:
		return plaintext[0] != 0, nil
	case LabelSize:
		var l Label
		copy(l[:], plaintext)
		return l, nil
	default:
		return nil, fmt.Errorf("%w: unexpected row value length %d",
			mpcerr.ErrProgrammer, len(plaintext))
	}
}

// reduceTruthTable projects a gate's truth table after fixing the
// inputs named in assignments (nil entries stay free). The reduced
// table has length 2^(n-|fixed|); its m-th entry is the original
// table evaluated at the index formed by scattering m's bits across
// the free positions and OR-ing in the fixed true-bits.
func reduceTruthTable(table []bool, assignments []*bool) []bool {
	n := len(assignments)
	if len(table) != 1<<uint(n) {
		panic("circuit: truth table length does not match input count")
	}

	var freeVars []int
	setBits := 0
	for i, a := range assignments {
		if a == nil {
			freeVars = append(freeVars, i)
		} else if *a {
			setBits |= 1 << uint(i)
		}
	}

	k := len(freeVars)
	reduced := make([]bool, 1<<uint(k))
	for mask := 0; mask < (1 << uint(k)); mask++ {
		fullMask := setBits
		for i, bitpos := range freeVars {
			if mask&(1<<uint(i)) != 0 {
				fullMask |= 1 << uint(bitpos)
			}
		}
		reduced[mask] = table[fullMask]
	}
	return reduced
}
