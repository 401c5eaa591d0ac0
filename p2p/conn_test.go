//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bytes"
	"errors"
	"testing"

	"github.com/markkurossi/yao2pc/mpcerr"
)

func TestConnRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	conn := NewConn(buf)

	if err := conn.SendUint32(42); err != nil {
		t.Fatalf("SendUint32: %v", err)
	}
	if err := conn.SendData([]byte("hello")); err != nil {
		t.Fatalf("SendData: %v", err)
	}
	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	n, err := conn.ReceiveUint32()
	if err != nil {
		t.Fatalf("ReceiveUint32: %v", err)
	}
	if n != 42 {
		t.Fatalf("got %d, want 42", n)
	}

	data, err := conn.ReceiveData()
	if err != nil {
		t.Fatalf("ReceiveData: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("got %q, want %q", data, "hello")
	}
}

func TestConnStats(t *testing.T) {
	buf := &bytes.Buffer{}
	conn := NewConn(buf)

	if err := conn.SendData([]byte("abc")); err != nil {
		t.Fatalf("SendData: %v", err)
	}
	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if conn.Stats.Sent != 4+3 {
		t.Fatalf("got %d bytes sent, want %d", conn.Stats.Sent, 4+3)
	}

	if _, err := conn.ReceiveData(); err != nil {
		t.Fatalf("ReceiveData: %v", err)
	}
	if conn.Stats.Recvd != 4+3 {
		t.Fatalf("got %d bytes received, want %d", conn.Stats.Recvd, 4+3)
	}
}

func TestConnReceiveOnEmptyFails(t *testing.T) {
	buf := &bytes.Buffer{}
	conn := NewConn(buf)

	_, err := conn.ReceiveUint32()
	if err == nil || !errors.Is(err, mpcerr.ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}
