package connection

import (
	"bytes"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"
)

// 辅助：返回一对内存 pipe，左边给 TCPConnection，右边给测试代码
func newPipeConns() (srv, cli net.Conn) {
	srv, cli = net.Pipe()
	return
}

// TestTCPConnection_All 在一个 Test 里跑完所有场景
func TestTCPConnection_All(t *testing.T) {
	t.Run("FieldsAfterNew", func(t *testing.T) {
		srv, _ := newPipeConns()
		defer srv.Close()
		c := NewTCPConnection(srv, 0).(*TCPConnection)

		if c.bufferSize != DefaultBufferSize {
			t.Errorf("default bufferSize want %d, got %d", DefaultBufferSize, c.bufferSize)
		}
		if c.IsClosed() {
			t.Error("new conn should not be closed")
		}
		if c.ID() == "" {
			t.Error("ID should not be empty")
		}
	})

	t.Run("UniqueIDs", func(t *testing.T) {
		a, _ := newPipeConns()
		b, _ := newPipeConns()
		defer a.Close()
		defer b.Close()
		if NewTCPConnection(a, 16).ID() == NewTCPConnection(b, 16).ID() {
			t.Error("connections should get distinct IDs")
		}
	})

	t.Run("ReadChunk", func(t *testing.T) {
		srv, cli := newPipeConns()
		defer srv.Close()
		defer cli.Close()
		c := NewTCPConnection(srv, 64)

		msg := []byte("*1\r\n$4\r\nPING\r\n")
		go func() {
			_, _ = cli.Write(msg)
		}()

		got, err := c.ReadChunk()
		if err != nil {
			t.Fatalf("ReadChunk error: %v", err)
		}
		if !bytes.Equal(got, msg) {
			t.Errorf("ReadChunk = %q, want %q", got, msg)
		}
	})

	t.Run("ReadChunkLimitedByBufferSize", func(t *testing.T) {
		srv, cli := newPipeConns()
		defer srv.Close()
		defer cli.Close()
		c := NewTCPConnection(srv, 4)

		go func() {
			_, _ = cli.Write([]byte("abcdefgh"))
		}()

		first, err := c.ReadChunk()
		if err != nil {
			t.Fatalf("ReadChunk error: %v", err)
		}
		if string(first) != "abcd" {
			t.Errorf("first chunk = %q, want abcd", first)
		}
		second, err := c.ReadChunk()
		if err != nil {
			t.Fatalf("ReadChunk error: %v", err)
		}
		if string(second) != "efgh" {
			t.Errorf("second chunk = %q, want efgh", second)
		}
	})

	t.Run("ReadChunkEOF", func(t *testing.T) {
		srv, cli := newPipeConns()
		defer srv.Close()
		c := NewTCPConnection(srv, 16)
		cli.Close()

		if _, err := c.ReadChunk(); !errors.Is(err, io.EOF) {
			t.Errorf("ReadChunk after peer close = %v, want io.EOF", err)
		}
	})

	t.Run("Write", func(t *testing.T) {
		srv, cli := newPipeConns()
		defer srv.Close()
		defer cli.Close()
		c := NewTCPConnection(srv, 16)

		msg := []byte("+PONG\r\n")
		// 先启动读端
		done := make(chan []byte, 1)
		go func() {
			buf := make([]byte, 64)
			n, _ := cli.Read(buf)
			done <- buf[:n]
		}()

		n, err := c.Write(msg)
		if err != nil {
			t.Fatalf("Write error: %v", err)
		}
		if n != len(msg) {
			t.Errorf("write length want %d, got %d", len(msg), n)
		}

		received := <-done
		if !bytes.Equal(received, msg) {
			t.Errorf("received %q, want %q", received, msg)
		}
	})

	t.Run("WriteAfterClose", func(t *testing.T) {
		srv, _ := newPipeConns()
		c := NewTCPConnection(srv, 16)
		c.Close()

		_, err := c.Write([]byte("x"))
		if !errors.Is(err, ErrConnectionClosed) || err.Error() != "connection closed" {
			t.Errorf("expected 'connection closed', got %v", err)
		}
	})

	t.Run("CloseIdempotent", func(t *testing.T) {
		srv, _ := newPipeConns()
		c := NewTCPConnection(srv, 16)

		if err := c.Close(); err != nil {
			t.Fatalf("first Close error: %v", err)
		}
		if !c.IsClosed() {
			t.Error("IsClosed should be true")
		}
		// 再关一次不应出错
		if err := c.Close(); err != nil {
			t.Errorf("second Close should be nil, got %v", err)
		}
	})

	t.Run("CloseUnblocksRead", func(t *testing.T) {
		srv, cli := newPipeConns()
		defer cli.Close()
		c := NewTCPConnection(srv, 16)

		errCh := make(chan error, 1)
		go func() {
			_, err := c.ReadChunk()
			errCh <- err
		}()

		time.Sleep(5 * time.Millisecond)
		_ = c.Close()

		select {
		case err := <-errCh:
			if err == nil {
				t.Error("ReadChunk should fail after Close")
			}
		case <-time.After(time.Second):
			t.Fatal("ReadChunk still blocked after Close")
		}
	})

	t.Run("ConcurrentWriteAndClose", func(t *testing.T) {
		srv, _ := newPipeConns()
		c := NewTCPConnection(srv, 16)

		var wg sync.WaitGroup
		wg.Add(10)

		for i := 0; i < 10; i++ {
			go func() {
				defer wg.Done()
				// 给底层 conn 加写超时，防止阻塞
				_ = srv.SetWriteDeadline(time.Now().Add(50 * time.Millisecond))
				_, _ = c.Write([]byte("x")) // 忽略错误，只测竞态
			}()
		}

		time.Sleep(5 * time.Millisecond)
		_ = c.Close()
		wg.Wait()
	})

	t.Run("RemoteAddr", func(t *testing.T) {
		srv, _ := newPipeConns()
		defer srv.Close()
		c := NewTCPConnection(srv, 16)
		if c.RemoteAddr() == "" {
			t.Error("RemoteAddr should not be empty")
		}
	})
}

func TestFakeConnection(t *testing.T) {
	c := NewFakeConnection([]byte("a"), []byte("b"))

	for _, want := range []string{"a", "b"} {
		got, err := c.ReadChunk()
		if err != nil || string(got) != want {
			t.Fatalf("ReadChunk = (%q, %v), want (%q, nil)", got, err, want)
		}
	}
	if _, err := c.ReadChunk(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadChunk after last chunk = %v, want io.EOF", err)
	}

	if _, err := c.Write([]byte("+OK\r\n")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if w := c.Written(); len(w) != 1 || string(w[0]) != "+OK\r\n" {
		t.Errorf("Written = %q", w)
	}

	_ = c.Close()
	if _, err := c.Write([]byte("x")); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Write after Close = %v, want ErrConnectionClosed", err)
	}
}

// 编译期检查：实现了 Connection 接口
func TestConnectionInterface(t *testing.T) {
	var _ Connection = (*TCPConnection)(nil)
	var _ Connection = (*FakeConnection)(nil)
}
