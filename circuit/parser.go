//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/markkurossi/yao2pc/mpcerr"
)

var reParts = regexp.MustCompilePOSIX("[[:space:]]+")

// Partition is the result of parsing a circuit description: the
// circuit itself plus the A-owned and B-owned terminal partitions, in
// file order.
type Partition struct {
	Circuit *Circuit
	A       []*Terminal
	B       []*Terminal
}

// nextLine reads the next non-blank, non-comment line from r, or
// returns io.EOF.
func nextLine(r *bufio.Reader) (string, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && len(line) == 0 {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// nextPartitionLine reads one partition line verbatim: unlike nextLine
// it does not skip blank lines, since a blank line is how a circuit
// with zero terminals in that partition (e.g. the identity circuit's
// empty A side) is spelled. Reaching EOF immediately, with nothing
// read, is treated the same as a blank line rather than an error, so
// a final partition line need not be newline-terminated.
func nextPartitionLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && len(line) == 0 {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// Parse reads a full circuit description: the term/gate/output lines
// followed by the A and B terminal-partition lines, per spec.md §6.
func Parse(r io.Reader) (*Partition, error) {
	br := bufio.NewReader(r)

	circ, err := parseDescription(br)
	if err != nil {
		return nil, err
	}

	aLine, err := nextPartitionLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: missing A partition line: %v", mpcerr.ErrParse, err)
	}
	bLine, err := nextPartitionLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: missing B partition line: %v", mpcerr.ErrParse, err)
	}

	name2terminal := make(map[string]*Terminal, len(circ.Terminals))
	for _, t := range circ.Terminals {
		name2terminal[t.Name] = t
	}

	aNames := reParts.Split(aLine, -1)
	bNames := reParts.Split(bLine, -1)

	seen := make(map[string]string, len(circ.Terminals))

	resolve := func(names []string, owner string) ([]*Terminal, error) {
		var out []*Terminal
		for _, name := range names {
			if name == "" {
				continue
			}
			t, ok := name2terminal[name]
			if !ok {
				return nil, fmt.Errorf("%w: terminal %q not found in circuit",
					mpcerr.ErrParse, name)
			}
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("%w: terminal %q assigned to both %s and %s",
					mpcerr.ErrPartition, name, prev, owner)
			}
			seen[name] = owner
			out = append(out, t)
		}
		return out, nil
	}

	aTerminals, err := resolve(aNames, "A")
	if err != nil {
		return nil, err
	}
	bTerminals, err := resolve(bNames, "B")
	if err != nil {
		return nil, err
	}

	if len(seen) != len(circ.Terminals) {
		for _, t := range circ.Terminals {
			if _, ok := seen[t.Name]; !ok {
				return nil, fmt.Errorf("%w: terminal %q not assigned to either partition",
					mpcerr.ErrPartition, t.Name)
			}
		}
	}

	return &Partition{Circuit: circ, A: aTerminals, B: bTerminals}, nil
}

// parseDescription parses the term/gate/output lines of a circuit
// description, stopping after (and including) the output line.
func parseDescription(r *bufio.Reader) (*Circuit, error) {
	mapper := make(map[string]Node)
	var terminals []*Terminal
	var output Node

	for {
		line, err := nextLine(r)
		if err != nil {
			if output == nil {
				return nil, fmt.Errorf("%w: missing output line: %v", mpcerr.ErrParse, err)
			}
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrParse, err)
		}

		tokens := reParts.Split(line, -1)
		if len(tokens) == 0 {
			continue
		}
		kind := tokens[0]

		switch {
		case kind == "term":
			t, identifier, err := handleTerminal(tokens, mapper)
			if err != nil {
				return nil, err
			}
			terminals = append(terminals, t)
			mapper[identifier] = t

		case kind == "output":
			identifier, err := handleOutput(tokens, mapper)
			if err != nil {
				return nil, err
			}
			output = mapper[identifier]
			return &Circuit{Terminals: terminals, Output: output}, nil

		default:
			node, identifier, err := handleGate(tokens, mapper)
			if err != nil {
				return nil, err
			}
			mapper[identifier] = node
		}
	}
}

func handleTerminal(tokens []string, mapper map[string]Node) (*Terminal, string, error) {
	if len(tokens) != 2 {
		return nil, "", fmt.Errorf("%w: invalid terminal line %q", mpcerr.ErrParse, strings.Join(tokens, " "))
	}
	identifier := tokens[1]
	if _, ok := mapper[identifier]; ok {
		return nil, "", fmt.Errorf("%w: duplicate identifier %q", mpcerr.ErrParse, identifier)
	}
	return &Terminal{Name: identifier}, identifier, nil
}

func handleOutput(tokens []string, mapper map[string]Node) (string, error) {
	if len(tokens) != 2 {
		return "", fmt.Errorf("%w: invalid output line %q", mpcerr.ErrParse, strings.Join(tokens, " "))
	}
	identifier := tokens[1]
	if _, ok := mapper[identifier]; !ok {
		return "", fmt.Errorf("%w: output identifier %q not found", mpcerr.ErrParse, identifier)
	}
	return identifier, nil
}

func handleGate(tokens []string, mapper map[string]Node) (Node, string, error) {
	if len(tokens) < 3 {
		return nil, "", fmt.Errorf("%w: invalid gate line %q", mpcerr.ErrParse, strings.Join(tokens, " "))
	}

	gateType := strings.ToLower(tokens[0])
	inputNames := tokens[1 : len(tokens)-1]
	identifier := tokens[len(tokens)-1]

	if _, ok := mapper[identifier]; ok {
		return nil, "", fmt.Errorf("%w: duplicate identifier %q", mpcerr.ErrParse, identifier)
	}

	inputs := make([]Node, len(inputNames))
	for i, name := range inputNames {
		node, ok := mapper[name]
		if !ok {
			return nil, "", fmt.Errorf("%w: input identifier %q not found", mpcerr.ErrParse, name)
		}
		inputs[i] = node
	}

	var kind Kind
	switch gateType {
	case "and":
		kind = AND
	case "or":
		kind = OR
	case "not":
		kind = NOT
	case "buffer":
		kind = BUFFER
	default:
		return nil, "", fmt.Errorf("%w: unsupported gate type %q", mpcerr.ErrParse, gateType)
	}

	if len(inputs) != kind.Arity() {
		return nil, "", fmt.Errorf("%w: %s gate requires %d input(s), got %d",
			mpcerr.ErrParse, gateType, kind.Arity(), len(inputs))
	}

	gate := &Gate{Kind: kind, Inputs: inputs, ID: identifier}
	return gate, identifier, nil
}
