//
// Copyright (c) 2019-2025 Markku Rossi
//
// All rights reserved.
//

// Package p2p implements the length-prefixed message framing used to
// exchange the two protocol messages between garbler and evaluator.
package p2p

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/markkurossi/yao2pc/mpcerr"
)

// Conn is a buffered, length-prefixed framer over a byte stream.
type Conn struct {
	closer io.Closer
	io     *bufio.ReadWriter
	Stats  IOStats
}

// IOStats tracks the number of bytes sent and received on a Conn.
type IOStats struct {
	Sent  uint64
	Recvd uint64
}

// NewConn wraps conn with buffered length-prefixed framing. If conn
// implements io.Closer, Close closes it too.
func NewConn(conn io.ReadWriter) *Conn {
	closer, _ := conn.(io.Closer)

	return &Conn{
		closer: closer,
		io: bufio.NewReadWriter(bufio.NewReader(conn),
			bufio.NewWriter(conn)),
	}
}

// Flush flushes any buffered writes.
func (c *Conn) Flush() error {
	if err := c.io.Flush(); err != nil {
		return fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	return nil
}

// Close flushes and closes the underlying connection.
func (c *Conn) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// SendUint32 writes a big-endian uint32.
func (c *Conn) SendUint32(val int) error {
	if err := binary.Write(c.io, binary.BigEndian, uint32(val)); err != nil {
		return fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	c.Stats.Sent += 4
	return nil
}

// SendData writes a length-prefixed byte slice.
func (c *Conn) SendData(val []byte) error {
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	if _, err := c.io.Write(val); err != nil {
		return fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	c.Stats.Sent += uint64(len(val))
	return nil
}

// ReceiveUint32 reads a big-endian uint32.
func (c *Conn) ReceiveUint32() (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(c.io, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	c.Stats.Recvd += 4
	return int(binary.BigEndian.Uint32(buf[:])), nil
}

// ReceiveData reads a length-prefixed byte slice.
func (c *Conn) ReceiveData() ([]byte, error) {
	n, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	result := make([]byte, n)
	if _, err := io.ReadFull(c.io, result); err != nil {
		return nil, fmt.Errorf("%w: %v", mpcerr.ErrTransport, err)
	}
	c.Stats.Recvd += uint64(n)
	return result, nil
}
