// Package domain contains core concepts of the chat system.
// This file defines the Client, the opaque handle of one accepted connection.
// Group membership and the connection directory are keyed by *Client.
package domain

import (
	"bytes"
	"chat-server/errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID          uuid.UUID
	ConnectedAt time.Time

	conn         net.Conn
	writeTimeout time.Duration

	// serializes writes so that concurrent senders never interleave two lines
	mu        sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func NewClient(conn net.Conn, writeTimeout time.Duration) *Client {
	return &Client{
		ID:           uuid.New(),
		ConnectedAt:  time.Now().UTC(),
		conn:         conn,
		writeTimeout: writeTimeout,
	}
}

// ReadLine performs exactly one bounded read and treats it as one complete line.
// Bytes after the first NUL are dropped, so fixed-width padded frames read as C strings.
// A zero-byte read or a transport error is reported as ErrPeerDisconnected.
func (c *Client) ReadLine(buf []byte) (string, error) {
	n, err := c.conn.Read(buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrPeerDisconnected, err)
	}
	if n == 0 {
		return "", errors.ErrPeerDisconnected
	}
	data := buf[:n]
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data), nil
}

// Send writes msg as a single newline-terminated line.
// Without a write timeout the call blocks as long as the peer does not read.
func (c *Client) Send(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}
	_, err := io.WriteString(c.conn, msg+"\n")
	return err
}

// Close releases the underlying connection. Safe to call many times.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *Client) RemoteAddr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
