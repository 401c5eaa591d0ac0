//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"fmt"
	"net"

	"github.com/markkurossi/yao2pc/mpcerr"
)

// Dial connects to a peer and returns a framed Conn. The garbler
// dials out to the evaluator's listening socket.
func Dial(addr string) (*Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	return NewConn(nc), nil
}

// Listen listens on addr and accepts exactly one connection, which it
// returns as a framed Conn. The evaluator listens; the protocol is a
// single two-message exchange over one connection.
func Listen(addr string) (*Conn, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	defer ln.Close()

	nc, err := ln.Accept()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	return NewConn(nc), nil
}
