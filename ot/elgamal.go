//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/markkurossi/yao2pc/mpcerr"
	"github.com/markkurossi/yao2pc/ot/mpint"
)

// PublicKey is an ElGamal public key: the group parameters plus the
// public element Y = G^X mod P.
type PublicKey struct {
	Params *Params
	Y      *big.Int
}

// PrivateKey is an ElGamal private key: the public key plus the
// discrete log X of Y.
type PrivateKey struct {
	PublicKey
	X *big.Int
}

// Ciphertext is a probabilistic ElGamal ciphertext (C1, C2).
type Ciphertext struct {
	C1 *big.Int
	C2 *big.Int
}

// KeyGen generates a fresh ElGamal keypair over params.
func KeyGen(rd io.Reader, params *Params) (*PublicKey, *PrivateKey, error) {
	pMinus1 := mpint.Sub(params.P, big.NewInt(1))
	x, err := rand.Int(rd, pMinus1)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", mpcerr.ErrCrypto, err)
	}
	x = mpint.Add(x, big.NewInt(1)) // x in [1, P-1]

	y := mpint.Exp(params.G, x, params.P)

	pub := PublicKey{Params: params, Y: y}
	return &pub, &PrivateKey{PublicKey: pub, X: x}, nil
}

// Encrypt encrypts message m (interpreted as an integer in [0, P))
// under pk, returning a fresh probabilistic ciphertext.
func Encrypt(rd io.Reader, pk *PublicKey, m *big.Int) (*Ciphertext, error) {
	if m.Cmp(pk.Params.P) >= 0 || m.Sign() < 0 {
		return nil, fmt.Errorf("%w: message out of range for group", mpcerr.ErrCrypto)
	}

	pMinus1 := mpint.Sub(pk.Params.P, big.NewInt(1))
	k, err := rand.Int(rd, pMinus1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrCrypto, err)
	}
	k = mpint.Add(k, big.NewInt(1))

	c1 := mpint.Exp(pk.Params.G, k, pk.Params.P)
	s := mpint.Exp(pk.Y, k, pk.Params.P)
	c2 := mpint.Mod(mpint.Mul(m, s), pk.Params.P)

	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Decrypt recovers the plaintext integer encrypted in ct under sk.
func Decrypt(ct *Ciphertext, sk *PrivateKey) (*big.Int, error) {
	s := mpint.Exp(ct.C1, sk.X, sk.Params.P)
	sInv := mpint.Inv(s, sk.Params.P)
	if sInv == nil {
		return nil, fmt.Errorf("%w: shared secret not invertible", mpcerr.ErrCrypto)
	}
	m := mpint.Mod(mpint.Mul(ct.C2, sInv), sk.Params.P)
	return m, nil
}

// Shift returns a public key whose public element is Y·G^delta mod P.
// The holder of pk's secret key knows the secret key for the shifted
// key iff delta == 0; for delta != 0 the shifted key's discrete log is
// (unknown secret + delta), which nobody else can derive. This is the
// primitive the 1-out-of-n OT receiver uses to publish n public keys
// for which it knows exactly one secret key.
func (pk *PublicKey) Shift(delta int) *PublicKey {
	var gd *big.Int
	if delta >= 0 {
		gd = mpint.Exp(pk.Params.G, big.NewInt(int64(delta)), pk.Params.P)
	} else {
		ginv := mpint.Inv(pk.Params.G, pk.Params.P)
		gd = mpint.Exp(ginv, big.NewInt(int64(-delta)), pk.Params.P)
	}
	y := mpint.Mod(mpint.Mul(pk.Y, gd), pk.Params.P)
	return &PublicKey{Params: pk.Params, Y: y}
}
