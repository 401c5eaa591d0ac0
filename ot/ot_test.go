//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestOTFetchesChosenMessage(t *testing.T) {
	params, err := GenerateParams(rand.Reader, 96)
	if err != nil {
		t.Fatalf("GenerateParams: %v", err)
	}

	messages := [][]byte{
		{0x00, 0x01},
		{0x02, 0x03},
		{0x04, 0x05},
		{0xff, 0xff},
	}
	const choice = 2

	pubKeys, state, err := ReceiverRound1(rand.Reader, params, len(messages), choice)
	if err != nil {
		t.Fatalf("ReceiverRound1: %v", err)
	}

	ciphertexts, err := SenderRound1(rand.Reader, messages, pubKeys)
	if err != nil {
		t.Fatalf("SenderRound1: %v", err)
	}

	got, err := ReceiverRound2(state, ciphertexts, len(messages[choice]))
	if err != nil {
		t.Fatalf("ReceiverRound2: %v", err)
	}

	if !bytes.Equal(got, messages[choice]) {
		t.Errorf("got %x, want %x", got, messages[choice])
	}
}

func TestOTChoiceOutOfRange(t *testing.T) {
	params, err := GenerateParams(rand.Reader, 64)
	if err != nil {
		t.Fatalf("GenerateParams: %v", err)
	}
	if _, _, err := ReceiverRound1(rand.Reader, params, 3, 5); err == nil {
		t.Fatal("expected error for out-of-range choice")
	}
	if _, _, err := ReceiverRound1(rand.Reader, params, 0, 0); err == nil {
		t.Fatal("expected error for n=0")
	}
}

func TestOTMessageCountMismatch(t *testing.T) {
	params, err := GenerateParams(rand.Reader, 64)
	if err != nil {
		t.Fatalf("GenerateParams: %v", err)
	}
	pubKeys, _, err := ReceiverRound1(rand.Reader, params, 2, 0)
	if err != nil {
		t.Fatalf("ReceiverRound1: %v", err)
	}
	_, err = SenderRound1(rand.Reader, [][]byte{{1}}, pubKeys)
	if err == nil {
		t.Fatal("expected error for mismatched message/key counts")
	}
}

func TestOTPreservesLeadingZeroBytes(t *testing.T) {
	params, err := GenerateParams(rand.Reader, 96)
	if err != nil {
		t.Fatalf("GenerateParams: %v", err)
	}

	messages := [][]byte{
		{0x00, 0x00, 0x01},
		{0x00, 0xaa, 0xbb},
	}
	const choice = 1

	pubKeys, state, err := ReceiverRound1(rand.Reader, params, len(messages), choice)
	if err != nil {
		t.Fatalf("ReceiverRound1: %v", err)
	}
	ciphertexts, err := SenderRound1(rand.Reader, messages, pubKeys)
	if err != nil {
		t.Fatalf("SenderRound1: %v", err)
	}
	got, err := ReceiverRound2(state, ciphertexts, len(messages[choice]))
	if err != nil {
		t.Fatalf("ReceiverRound2: %v", err)
	}
	if !bytes.Equal(got, messages[choice]) {
		t.Errorf("got %x, want %x", got, messages[choice])
	}
}
