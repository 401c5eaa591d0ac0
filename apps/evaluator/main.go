//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Command evaluator runs the B (evaluator) role of the two-party
// garbled circuit protocol: evaluator <listen_port> <circuit_file>
// <assignment_file> [--verbose].
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/markkurossi/yao2pc/circuit"
	"github.com/markkurossi/yao2pc/env"
	"github.com/markkurossi/yao2pc/p2p"
	"github.com/markkurossi/yao2pc/protocol"
)

func main() {
	fVerbose := flag.Bool("verbose", false, "enable diagnostic logging")
	flag.Parse()

	args := flag.Args()
	// flag.Parse stops at the first positional argument, so accept a
	// trailing --verbose after them as well.
	if len(args) == 4 && (args[3] == "--verbose" || args[3] == "-verbose") {
		*fVerbose = true
		args = args[:3]
	}
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr,
			"usage: evaluator <listen_port> <circuit_file> <assignment_file> [--verbose]")
		os.Exit(1)
	}
	port, circuitFile, assignmentFile := args[0], args[1], args[2]

	result, err := run(port, circuitFile, assignmentFile, *fVerbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluator: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("result: %v\n", result)
}

func run(port, circuitFile, assignmentFile string, verbose bool) (bool, error) {
	cf, err := os.Open(circuitFile)
	if err != nil {
		return false, err
	}
	defer cf.Close()

	part, err := circuit.Parse(cf)
	if err != nil {
		return false, err
	}

	af, err := os.Open(assignmentFile)
	if err != nil {
		return false, err
	}
	defer af.Close()

	assignment, err := circuit.ParseAssignment(af, part.B)
	if err != nil {
		return false, err
	}

	cfg := &env.Config{Verbose: verbose}
	if verbose {
		stats := part.Circuit.Stats()
		circuit.PrintStats(os.Stdout, circuitFile, stats)
	}

	addr := fmt.Sprintf(":%s", port)
	conn, err := p2p.Listen(addr)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	return protocol.RunEvaluator(conn, cfg, part, assignment)
}
