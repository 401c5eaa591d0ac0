//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package harness runs the two-party protocol end to end within a
// single process, in place of the two independent CLI processes
// apps/garbler and apps/evaluator normally are. It exists to
// cross-check the protocol's output against direct simplification,
// the same property the Python original's stresstester.py checked by
// shelling out to two subprocesses per assignment.
package harness

import (
	"fmt"
	"io"
	"strings"

	"github.com/markkurossi/yao2pc/circuit"
	"github.com/markkurossi/yao2pc/env"
	"github.com/markkurossi/yao2pc/p2p"
	"github.com/markkurossi/yao2pc/protocol"
)

// dualPipe adapts one read half and one write half of two independent
// io.Pipe pairs into the single io.ReadWriter a p2p.Conn requires.
type dualPipe struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (d *dualPipe) Read(b []byte) (int, error)  { return d.r.Read(b) }
func (d *dualPipe) Write(b []byte) (int, error) { return d.w.Write(b) }

// Run parses circuitSrc independently for each party (mirroring two
// separate processes each loading their own copy of the circuit file)
// and drives the protocol between them over a pair of in-process
// pipes. aBits and bBits give the full assignment for A's and B's
// partitions respectively, keyed by terminal name. It returns the
// evaluator's recovered output bit.
func Run(circuitSrc string, aBits, bBits map[string]bool) (bool, error) {
	partA, err := circuit.Parse(strings.NewReader(circuitSrc))
	if err != nil {
		return false, fmt.Errorf("parsing circuit for garbler: %w", err)
	}
	partB, err := circuit.Parse(strings.NewReader(circuitSrc))
	if err != nil {
		return false, fmt.Errorf("parsing circuit for evaluator: %w", err)
	}

	assignA, err := byName(partA.A, aBits)
	if err != nil {
		return false, fmt.Errorf("garbler assignment: %w", err)
	}
	assignB, err := byName(partB.B, bBits)
	if err != nil {
		return false, fmt.Errorf("evaluator assignment: %w", err)
	}

	r1, w1 := io.Pipe() // garbler -> evaluator
	r2, w2 := io.Pipe() // evaluator -> garbler

	connGarbler := p2p.NewConn(&dualPipe{r: r2, w: w1})
	connEvaluator := p2p.NewConn(&dualPipe{r: r1, w: w2})

	cfg := &env.Config{}

	errCh := make(chan error, 1)
	go func() {
		errCh <- protocol.RunGarbler(connGarbler, cfg, partA, assignA)
	}()

	result, evalErr := protocol.RunEvaluator(connEvaluator, cfg, partB, assignB)
	if garblerErr := <-errCh; garblerErr != nil {
		return false, fmt.Errorf("garbler: %w", garblerErr)
	}
	if evalErr != nil {
		return false, fmt.Errorf("evaluator: %w", evalErr)
	}
	return result, nil
}

// byName builds a circuit.Assignment over owned from a name-keyed map,
// failing if any owned terminal is missing from bits.
func byName(owned []*circuit.Terminal, bits map[string]bool) (circuit.Assignment, error) {
	assignment := make(circuit.Assignment, len(owned))
	for _, t := range owned {
		v, ok := bits[t.Name]
		if !ok {
			return nil, fmt.Errorf("no value given for terminal %q", t.Name)
		}
		assignment[t] = v
	}
	return assignment, nil
}

// FullAssignment evaluates circuitSrc directly (no garbling) under a
// full, name-keyed assignment covering every terminal. It is the
// "direct evaluation" half of the brute-force-vs-protocol cross-check.
func FullAssignment(circuitSrc string, bits map[string]bool) (bool, error) {
	part, err := circuit.Parse(strings.NewReader(circuitSrc))
	if err != nil {
		return false, err
	}
	assignment, err := byName(part.Circuit.Terminals, bits)
	if err != nil {
		return false, err
	}
	simplified := part.Circuit.Simplify(assignment)
	b, ok := simplified.(circuit.Bool)
	if !ok {
		return false, fmt.Errorf("circuit did not fully reduce under full assignment: %v", simplified)
	}
	return bool(b), nil
}
