//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"io"
	"strconv"

	"github.com/markkurossi/tabulate"
)

// PrintStats renders a circuit's Stats as a table, in the style of
// the compiler's object-dump tooling.
func PrintStats(w io.Writer, name string, s Stats) {
	tab := tabulate.New(tabulate.Github)
	tab.Header("File")
	tab.Header("Terminals").SetAlign(tabulate.MR)
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("OR").SetAlign(tabulate.MR)
	tab.Header("NOT").SetAlign(tabulate.MR)
	tab.Header("BUFFER").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column(name)
	row.Column(strconv.Itoa(s.Terminals))
	row.Column(strconv.Itoa(s.AND))
	row.Column(strconv.Itoa(s.OR))
	row.Column(strconv.Itoa(s.NOT))
	row.Column(strconv.Itoa(s.BUFFER))

	tab.Print(w)
}
