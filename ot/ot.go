//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"fmt"
	"io"

	"github.com/markkurossi/yao2pc/mpcerr"
	"github.com/markkurossi/yao2pc/ot/mpint"
)

// ReceiverState is what the receiver retains locally between
// ReceiverRound1 and ReceiverRound2: its secret key and choice index.
type ReceiverState struct {
	SK *PrivateKey
	C  int
}

// ReceiverRound1 runs the receiver's half of the first OT round trip:
// it generates one ElGamal keypair and publishes n public keys, one
// per candidate index, such that it knows the secret key only for
// index c. n is fixed by the length of the returned slice.
func ReceiverRound1(rd io.Reader, params *Params, n, c int) ([]*PublicKey, *ReceiverState, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("%w: n must be positive", mpcerr.ErrProgrammer)
	}
	if c < 0 || c >= n {
		return nil, nil, fmt.Errorf("%w: choice %d out of range [0,%d)", mpcerr.ErrProgrammer, c, n)
	}

	pub, sk, err := KeyGen(rd, params)
	if err != nil {
		return nil, nil, err
	}

	keys := make([]*PublicKey, n)
	for i := 0; i < n; i++ {
		keys[i] = pub.Shift(i - c)
	}

	return keys, &ReceiverState{SK: sk, C: c}, nil
}

// SenderRound1 runs the sender's half of the OT round trip: it
// encrypts messages[i] under publicKeys[i] for every i. Message
// lengths must not exceed the group modulus; the protocol uses this
// to transfer 32-byte wire labels under a multi-thousand-bit modulus.
func SenderRound1(rd io.Reader, messages [][]byte, publicKeys []*PublicKey) ([]*Ciphertext, error) {
	if len(messages) != len(publicKeys) {
		return nil, fmt.Errorf("%w: %d messages for %d public keys",
			mpcerr.ErrProgrammer, len(messages), len(publicKeys))
	}

	ciphertexts := make([]*Ciphertext, len(messages))
	for i, msg := range messages {
		m := mpint.FromBytes(msg)
		ct, err := Encrypt(rd, publicKeys[i], m)
		if err != nil {
			return nil, err
		}
		ciphertexts[i] = ct
	}
	return ciphertexts, nil
}

// ReceiverRound2 finalizes the transfer: it decrypts ciphertexts[c]
// under the receiver's retained secret key and returns the recovered
// message, left-padded with zero bytes to msgLen bytes (big-endian) so
// a message with leading zero bytes round-trips exactly. A value wider
// than msgLen bytes is not truncated: big.Int.FillBytes panics on it.
func ReceiverRound2(state *ReceiverState, ciphertexts []*Ciphertext, msgLen int) ([]byte, error) {
	if state.C < 0 || state.C >= len(ciphertexts) {
		return nil, fmt.Errorf("%w: choice %d out of range for %d ciphertexts",
			mpcerr.ErrProgrammer, state.C, len(ciphertexts))
	}

	m, err := Decrypt(ciphertexts[state.C], state.SK)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, msgLen)
	m.FillBytes(buf)
	return buf, nil
}
