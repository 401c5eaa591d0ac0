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

	"github.com/markkurossi/yao2pc/mpcerr"
)

// ParseAssignment reads an assignment file: one "<name> <0|1>" line
// per terminal, per spec.md §6. Every named terminal must belong to
// owned (the caller's partition); duplicates are rejected.
func ParseAssignment(r io.Reader, owned []*Terminal) (Assignment, error) {
	name2terminal := make(map[string]*Terminal, len(owned))
	for _, t := range owned {
		name2terminal[t.Name] = t
	}

	assignment := make(Assignment, len(owned))
	br := bufio.NewReader(r)

	for {
		line, err := nextLine(br)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrParse, err)
		}

		tokens := reParts.Split(line, -1)
		if len(tokens) != 2 {
			return nil, fmt.Errorf("%w: invalid assignment line %q", mpcerr.ErrParse, line)
		}
		name, value := tokens[0], tokens[1]

		t, ok := name2terminal[name]
		if !ok {
			return nil, fmt.Errorf("%w: terminal %q not in caller's partition", mpcerr.ErrParse, name)
		}
		if _, ok := assignment[t]; ok {
			return nil, fmt.Errorf("%w: terminal %q assigned twice", mpcerr.ErrParse, name)
		}

		var b bool
		switch value {
		case "0":
			b = false
		case "1":
			b = true
		default:
			return nil, fmt.Errorf("%w: invalid assignment value %q for %q", mpcerr.ErrParse, value, name)
		}
		assignment[t] = b
	}

	return assignment, nil
}
