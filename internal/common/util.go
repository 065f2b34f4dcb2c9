package common

import (
	"strings"
)

// JoinArgs 把命令行拼成一行，便于日志输出
func JoinArgs(content [][]byte) string {
	sb := strings.Builder{}
	for i, v := range content {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(v)
	}
	return sb.String()
}

// CloneBytes 复制一份独立的字节切片，nil 也返回非 nil 的空切片
func CloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
