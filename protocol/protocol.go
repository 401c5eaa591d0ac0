//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package protocol drives the two-message garbled-circuit exchange
// between the garbler (A) and the evaluator (B) over a p2p.Conn.
package protocol

import (
	"fmt"

	"github.com/markkurossi/text/superscript"

	"github.com/markkurossi/yao2pc/circuit"
	"github.com/markkurossi/yao2pc/env"
	"github.com/markkurossi/yao2pc/mpcerr"
	"github.com/markkurossi/yao2pc/ot"
	"github.com/markkurossi/yao2pc/ot/mpint"
	"github.com/markkurossi/yao2pc/p2p"
)

func sendPublicKey(conn *p2p.Conn, pk *ot.PublicKey) error {
	return conn.SendData(pk.Y.Bytes())
}

func receivePublicKey(conn *p2p.Conn, params *ot.Params) (*ot.PublicKey, error) {
	data, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	return &ot.PublicKey{Params: params, Y: mpint.FromBytes(data)}, nil
}

func sendCiphertext(conn *p2p.Conn, ct *ot.Ciphertext) error {
	if err := conn.SendData(ct.C1.Bytes()); err != nil {
		return err
	}
	return conn.SendData(ct.C2.Bytes())
}

func receiveCiphertext(conn *p2p.Conn) (*ot.Ciphertext, error) {
	c1, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	c2, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	return &ot.Ciphertext{C1: mpint.FromBytes(c1), C2: mpint.FromBytes(c2)}, nil
}

// RunEvaluator drives B's side of the protocol: it publishes OT
// receiver round 1, waits for A's ciphertexts and the garbled circuit,
// and returns the recovered output bit.
func RunEvaluator(conn *p2p.Conn, cfg *env.Config, part *circuit.Partition, assignment circuit.Assignment) (bool, error) {
	log := cfg.Logger("evaluator")
	live := circuit.SortedTerminals(part.B)
	params := ot.DefaultParams

	states := make([]*ot.ReceiverState, len(live))

	if err := conn.SendUint32(len(live)); err != nil {
		return false, err
	}
	for i, t := range live {
		choice := 0
		if assignment[t] {
			choice = 1
		}
		pubKeys, state, err := ot.ReceiverRound1(cfg.GetRandom(), params, 2, choice)
		if err != nil {
			return false, fmt.Errorf("%w: OT round 1 for terminal %q: %v",
				mpcerr.ErrCrypto, t.Name, err)
		}
		states[i] = state
		for _, pk := range pubKeys {
			if err := sendPublicKey(conn, pk); err != nil {
				return false, err
			}
		}
		log.Printf("OT%s receiver round 1: terminal %s", superscript.Itoa(i), t.Name)
	}
	if err := conn.Flush(); err != nil {
		return false, err
	}

	received := make(map[*circuit.Terminal]circuit.Label, len(live))
	for i, t := range live {
		ct0, err := receiveCiphertext(conn)
		if err != nil {
			return false, err
		}
		ct1, err := receiveCiphertext(conn)
		if err != nil {
			return false, err
		}
		buf, err := ot.ReceiverRound2(states[i], []*ot.Ciphertext{ct0, ct1}, circuit.LabelSize)
		if err != nil {
			return false, fmt.Errorf("%w: OT round 2 for terminal %q: %v",
				mpcerr.ErrCrypto, t.Name, err)
		}
		var label circuit.Label
		copy(label[:], buf)
		received[t] = label
		log.Printf("OT%s receiver round 2: terminal %s", superscript.Itoa(i), t.Name)
	}

	gc, err := circuit.Unmarshal(conn, live)
	if err != nil {
		return false, err
	}
	log.Printf("received garbled circuit: %d live terminals", len(live))

	return gc.Evaluate(received)
}

// RunGarbler drives A's side of the protocol: it waits for B's OT
// public keys, garbles the circuit under its own assignment, and
// sends the OT ciphertexts plus the marshaled garbled circuit.
func RunGarbler(conn *p2p.Conn, cfg *env.Config, part *circuit.Partition, assignment circuit.Assignment) error {
	log := cfg.Logger("garbler")
	live := circuit.SortedTerminals(part.B)
	params := ot.DefaultParams

	n, err := conn.ReceiveUint32()
	if err != nil {
		return err
	}
	if n != len(live) {
		return fmt.Errorf("%w: peer announced %d OT terminals, expected %d",
			mpcerr.ErrProgrammer, n, len(live))
	}

	pubKeys := make([][2]*ot.PublicKey, len(live))
	for i := range live {
		for j := 0; j < 2; j++ {
			pk, err := receivePublicKey(conn, params)
			if err != nil {
				return err
			}
			pubKeys[i][j] = pk
		}
	}

	labels := make(map[*circuit.Terminal]circuit.LabelPair, len(live))
	for _, t := range live {
		pair, err := circuit.NewLabelPair(cfg.GetRandom())
		if err != nil {
			return fmt.Errorf("%w: %v", mpcerr.ErrCrypto, err)
		}
		labels[t] = pair
	}

	gc, err := circuit.Garble(cfg.GetRandom(), part.Circuit, assignment, labels)
	if err != nil {
		return err
	}
	log.Printf("garbled circuit: %d live terminals", len(live))

	for i, t := range live {
		pair := labels[t]
		messages := [][]byte{pair[0].Bytes(), pair[1].Bytes()}
		cts, err := ot.SenderRound1(cfg.GetRandom(), messages, pubKeys[i][:])
		if err != nil {
			return fmt.Errorf("%w: OT sender round 1 for terminal %q: %v",
				mpcerr.ErrCrypto, t.Name, err)
		}
		for _, ct := range cts {
			if err := sendCiphertext(conn, ct); err != nil {
				return err
			}
		}
		log.Printf("OT%s sender round 1: terminal %s", superscript.Itoa(i), t.Name)
	}

	if err := gc.Marshal(conn, live); err != nil {
		return err
	}
	return conn.Flush()
}
