//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/markkurossi/yao2pc/p2p"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	c, a, b := buildAndCircuit()

	bPair, err := NewLabelPair(rand.Reader)
	if err != nil {
		t.Fatalf("NewLabelPair: %v", err)
	}
	labels := map[*Terminal]LabelPair{b: bPair}

	gc, err := Garble(rand.Reader, c, Assignment{a: true}, labels)
	if err != nil {
		t.Fatalf("Garble: %v", err)
	}

	order := []*Terminal{b}
	buf := &bytes.Buffer{}
	conn := p2p.NewConn(buf)

	if err := gc.Marshal(conn, order); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got, err := Unmarshal(conn, order)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, bv := range []bool{false, true} {
		received := map[*Terminal]Label{b: bPair.Select(bv)}
		out, err := got.Evaluate(received)
		if err != nil {
			t.Fatalf("Evaluate(%v): %v", bv, err)
		}
		if out != bv {
			t.Errorf("Evaluate(%v): got %v, want %v", bv, out, bv)
		}
	}
}

func TestMarshalUnmarshalBoolRoot(t *testing.T) {
	c, a, b := buildAndCircuit()
	gc, err := Garble(rand.Reader, c, Assignment{a: false, b: true}, nil)
	if err != nil {
		t.Fatalf("Garble: %v", err)
	}

	buf := &bytes.Buffer{}
	conn := p2p.NewConn(buf)
	if err := gc.Marshal(conn, nil); err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got, err := Unmarshal(conn, nil)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := got.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if out != false {
		t.Errorf("got %v, want false", out)
	}
}
