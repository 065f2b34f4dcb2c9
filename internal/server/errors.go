package server

import (
	"errors"
	"io"
	"net"
	"syscall"

	"respkv/pkg/connection"
)

// isDisconnect 对端断开或连接已被关闭
func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, connection.ErrConnectionClosed) ||
		errors.Is(err, syscall.ECONNRESET)
}
