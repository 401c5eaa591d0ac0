//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package ot implements 1-out-of-n oblivious transfer over an
// ElGamal-style public-key primitive.
package ot

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/markkurossi/yao2pc/mpcerr"
)

// Params defines an ElGamal group: a prime modulus P and a generator
// G of the multiplicative group mod P.
type Params struct {
	P *big.Int
	G *big.Int
}

// DefaultParams is the 2048-bit MODP group from RFC 3526 (group 14),
// a well-known safe prime with generator 2, giving well over the
// 128-bit discrete-log security level spec.md §4.2 requires. Using a
// fixed, widely reviewed group avoids paying for a fresh safe-prime
// search on every key generation.
var DefaultParams = mustParams(
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74"+
		"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437"+
		"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED"+
		"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05"+
		"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB"+
		"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B"+
		"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718"+
		"3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF",
	2,
)

func mustParams(hexP string, g int64) *Params {
	p, ok := new(big.Int).SetString(hexP, 16)
	if !ok {
		panic("ot: invalid default group modulus")
	}
	return &Params{P: p, G: big.NewInt(g)}
}

// GenerateParams searches for a fresh safe-prime group of the given
// bit size: a random prime q and p=2q+1, also prime, with generator
// 2. This is slow for anything beyond a few hundred bits; callers
// wanting production-strength parameters should use DefaultParams
// instead and reserve GenerateParams for tests that want independent,
// smaller groups.
func GenerateParams(rd io.Reader, bits int) (*Params, error) {
	if bits < 16 {
		return nil, fmt.Errorf("%w: group size must be at least 16 bits", mpcerr.ErrProgrammer)
	}
	for {
		q, err := rand.Prime(rd, bits-1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mpcerr.ErrCrypto, err)
		}
		p := new(big.Int).Lsh(q, 1)
		p.Add(p, big.NewInt(1))
		if p.ProbablyPrime(20) {
			return &Params{P: p, G: big.NewInt(2)}, nil
		}
	}
}
