//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Command garbler runs the A (garbler) role of the two-party garbled
// circuit protocol: garbler <peer_host> <peer_port> <circuit_file>
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
	if len(args) == 5 && (args[4] == "--verbose" || args[4] == "-verbose") {
		*fVerbose = true
		args = args[:4]
	}
	if len(args) != 4 {
		fmt.Fprintln(os.Stderr,
			"usage: garbler <peer_host> <peer_port> <circuit_file> <assignment_file> [--verbose]")
		os.Exit(1)
	}
	host, port, circuitFile, assignmentFile := args[0], args[1], args[2], args[3]

	if err := run(host, port, circuitFile, assignmentFile, *fVerbose); err != nil {
		fmt.Fprintf(os.Stderr, "garbler: %s\n", err)
		os.Exit(1)
	}
}

func run(host, port, circuitFile, assignmentFile string, verbose bool) error {
	cf, err := os.Open(circuitFile)
	if err != nil {
		return err
	}
	defer cf.Close()

	part, err := circuit.Parse(cf)
	if err != nil {
		return err
	}

	af, err := os.Open(assignmentFile)
	if err != nil {
		return err
	}
	defer af.Close()

	assignment, err := circuit.ParseAssignment(af, part.A)
	if err != nil {
		return err
	}

	cfg := &env.Config{Verbose: verbose}
	if verbose {
		stats := part.Circuit.Stats()
		circuit.PrintStats(os.Stdout, circuitFile, stats)
	}

	addr := fmt.Sprintf("%s:%s", host, port)
	conn, err := p2p.Dial(addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	return protocol.RunGarbler(conn, cfg, part, assignment)
}
