package connection

import (
	"io"
	"sync"
)

// FakeConnection 内存连接：按顺序返回预置的字节块，读完后返回 io.EOF
type FakeConnection struct {
	mu      sync.Mutex
	chunks  [][]byte
	written [][]byte
	closed  bool
}

func NewFakeConnection(chunks ...[]byte) *FakeConnection {
	return &FakeConnection{chunks: chunks}
}

func (c *FakeConnection) ReadChunk() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrConnectionClosed
	}
	if len(c.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := c.chunks[0]
	c.chunks = c.chunks[1:]
	return chunk, nil
}

func (c *FakeConnection) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrConnectionClosed
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	c.written = append(c.written, cp)
	return len(b), nil
}

// Written 返回每次 Write 的内容
func (c *FakeConnection) Written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.written
}

func (c *FakeConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *FakeConnection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *FakeConnection) RemoteAddr() string {
	return "local:fake"
}

func (c *FakeConnection) ID() string {
	return "fake"
}
