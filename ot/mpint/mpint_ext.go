//
// mpint_ext.go
//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package mpint

import (
	"math/big"
)

// Mul multiplies two big.Int numbers and returns the result as a new
// big.Int.
func Mul(a, b *big.Int) *big.Int {
	return big.NewInt(0).Mul(a, b)
}

// Inv computes the modular inverse of x mod m, or nil if x has no
// inverse mod m.
func Inv(x, m *big.Int) *big.Int {
	return big.NewInt(0).ModInverse(x, m)
}
