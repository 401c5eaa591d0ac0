//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/markkurossi/yao2pc/mpcerr"
)

// Writer is the minimal framing contract Marshal needs to send a
// garbled circuit on the wire; p2p.Conn satisfies it.
type Writer interface {
	SendUint32(int) error
	SendData([]byte) error
}

// Reader is the minimal framing contract Unmarshal needs to receive a
// garbled circuit from the wire; p2p.Conn satisfies it.
type Reader interface {
	ReceiveUint32() (int, error)
	ReceiveData() ([]byte, error)
}

const (
	tagBoolFalse byte = iota
	tagBoolTrue
	tagGate
	tagTerminal
)

// Marshal writes the garbled circuit in length-prefixed form. order
// must be the canonical (lexicographic) ordering of the live
// terminals, shared with the peer via the circuit file's B partition.
func (gc *GarbledCircuit) Marshal(w Writer, order []*Terminal) error {
	index := make(map[*Terminal]int, len(order))
	for i, t := range order {
		index[t] = i
	}
	switch root := gc.Root.(type) {
	case Bool:
		if root {
			return w.SendData([]byte{tagBoolTrue})
		}
		return w.SendData([]byte{tagBoolFalse})
	case *GarbledGate:
		if err := w.SendData([]byte{tagGate}); err != nil {
			return err
		}
		return marshalGate(w, root, index)
	default:
		return fmt.Errorf("%w: unknown garbled circuit root", mpcerr.ErrProgrammer)
	}
}

func marshalNode(w Writer, n GarbledNode, index map[*Terminal]int) error {
	switch v := n.(type) {
	case *Terminal:
		idx, ok := index[v]
		if !ok {
			return fmt.Errorf("%w: terminal %q not in canonical order",
				mpcerr.ErrSerialization, v.Name)
		}
		if err := w.SendData([]byte{tagTerminal}); err != nil {
			return err
		}
		return w.SendUint32(idx)
	case *GarbledGate:
		if err := w.SendData([]byte{tagGate}); err != nil {
			return err
		}
		return marshalGate(w, v, index)
	default:
		return fmt.Errorf("%w: unknown garbled node", mpcerr.ErrProgrammer)
	}
}

func marshalGate(w Writer, g *GarbledGate, index map[*Terminal]int) error {
	if err := w.SendUint32(int(g.Kind)); err != nil {
		return err
	}
	if err := w.SendUint32(len(g.Inputs)); err != nil {
		return err
	}
	for _, in := range g.Inputs {
		if err := marshalNode(w, in, index); err != nil {
			return err
		}
	}
	if err := w.SendUint32(len(g.rows)); err != nil {
		return err
	}
	for key, row := range g.rows {
		if err := w.SendData(key[:]); err != nil {
			return err
		}
		if err := w.SendData(row.ciphertext); err != nil {
			return err
		}
		if err := w.SendData(row.nonce[:]); err != nil {
			return err
		}
	}
	return nil
}

// Unmarshal reads a garbled circuit sent with Marshal. order must be
// the same canonical terminal ordering passed to Marshal.
func Unmarshal(r Reader, order []*Terminal) (*GarbledCircuit, error) {
	tag, err := r.ReceiveData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	if len(tag) != 1 {
		return nil, fmt.Errorf("%w: bad root tag", mpcerr.ErrSerialization)
	}
	switch tag[0] {
	case tagBoolFalse:
		return &GarbledCircuit{Root: Bool(false), Terminals: order}, nil
	case tagBoolTrue:
		return &GarbledCircuit{Root: Bool(true), Terminals: order}, nil
	case tagGate:
		g, err := unmarshalGate(r, order)
		if err != nil {
			return nil, err
		}
		return &GarbledCircuit{Root: g, Terminals: order}, nil
	default:
		return nil, fmt.Errorf("%w: unknown root tag %d", mpcerr.ErrSerialization, tag[0])
	}
}

func unmarshalNode(r Reader, order []*Terminal) (GarbledNode, error) {
	tag, err := r.ReceiveData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	if len(tag) != 1 {
		return nil, fmt.Errorf("%w: bad node tag", mpcerr.ErrSerialization)
	}
	switch tag[0] {
	case tagTerminal:
		idx, err := r.ReceiveUint32()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
		}
		if idx < 0 || idx >= len(order) {
			return nil, fmt.Errorf("%w: terminal index %d out of range",
				mpcerr.ErrSerialization, idx)
		}
		return order[idx], nil
	case tagGate:
		return unmarshalGate(r, order)
	default:
		return nil, fmt.Errorf("%w: unknown node tag %d", mpcerr.ErrSerialization, tag[0])
	}
}

func unmarshalGate(r Reader, order []*Terminal) (*GarbledGate, error) {
	kindInt, err := r.ReceiveUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	n, err := r.ReceiveUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	g := &GarbledGate{
		Kind:   Kind(kindInt),
		Inputs: make([]GarbledNode, n),
		rows:   make(map[[32]byte]garbledRow),
	}
	for i := 0; i < n; i++ {
		child, err := unmarshalNode(r, order)
		if err != nil {
			return nil, err
		}
		g.Inputs[i] = child
	}

	numRows, err := r.ReceiveUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	for i := 0; i < numRows; i++ {
		keyData, err := r.ReceiveData()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
		}
		if len(keyData) != 32 {
			return nil, fmt.Errorf("%w: row key has length %d, want 32",
				mpcerr.ErrSerialization, len(keyData))
		}
		ciphertext, err := r.ReceiveData()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
		}
		nonceData, err := r.ReceiveData()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
		}
		if len(nonceData) != 8 {
			return nil, fmt.Errorf("%w: row nonce has length %d, want 8",
				mpcerr.ErrSerialization, len(nonceData))
		}

		var key [32]byte
		copy(key[:], keyData)
		var row garbledRow
		row.ciphertext = ciphertext
		copy(row.nonce[:], nonceData)
		g.rows[key] = row
	}

	return g, nil
}
