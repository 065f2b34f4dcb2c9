package connection

import (
	"errors"
	"net"
	"sync"

	"github.com/google/uuid"
)

const DefaultBufferSize = 4096

var ErrConnectionClosed = errors.New("connection closed")

type TCPConnection struct {
	conn       net.Conn
	id         string
	bufferSize int

	mu     sync.Mutex
	closed bool
}

func NewTCPConnection(conn net.Conn, bufferSize int) Connection {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &TCPConnection{
		conn:       conn,
		id:         uuid.New().String(),
		bufferSize: bufferSize,
	}
}

// ReadChunk 阻塞直到读到至少一个字节，不做跨读取的拼包
func (c *TCPConnection) ReadChunk() ([]byte, error) {
	for {
		buf := make([]byte, c.bufferSize)
		n, err := c.conn.Read(buf)
		if n > 0 {
			return buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (c *TCPConnection) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, ErrConnectionClosed
	}
	return c.conn.Write(b)
}

func (c *TCPConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *TCPConnection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *TCPConnection) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *TCPConnection) ID() string {
	return c.id
}
