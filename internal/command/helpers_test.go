package command

import (
	"sync"
	"testing"

	"respkv/internal/resp"
)

// MockDB 内存版 Storage，记录调用次数
type MockDB struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func NewMockDB() *MockDB {
	return &MockDB{data: make(map[string][]byte)}
}

func (m *MockDB) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	return v, ok
}

func (m *MockDB) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = value
}

// 构造命令数组帧
func cmdFrame(args ...string) resp.Frame {
	arr := make(resp.Array, 0, len(args))
	for _, a := range args {
		arr = append(arr, resp.BulkString(a))
	}
	return arr
}

// 完整走一遍 解析 -> 执行 -> 响应
func run(t *testing.T, db *MockDB, args ...string) resp.Frame {
	t.Helper()
	cmd, err := FromFrame(cmdFrame(args...))
	if err != nil {
		t.Fatalf("FromFrame(%q) unexpected error: %v", args, err)
	}
	Execute(cmd, db)
	return Response(cmd)
}

func assertSimple(t *testing.T, f resp.Frame, expected string) {
	t.Helper()
	s, ok := f.(resp.SimpleString)
	if !ok {
		t.Fatalf("expected resp.SimpleString, got %T", f)
	}
	if string(s) != expected {
		t.Fatalf("expected %q, got %q", expected, s)
	}
}

// expected 为 nil 表示期望 Null
func assertBulk(t *testing.T, f resp.Frame, expected []byte) {
	t.Helper()
	if expected == nil {
		if _, ok := f.(resp.Null); !ok {
			t.Fatalf("expected resp.Null, got %T (%v)", f, f)
		}
		return
	}
	b, ok := f.(resp.BulkString)
	if !ok {
		t.Fatalf("expected resp.BulkString, got %T (%v)", f, f)
	}
	if string(b) != string(expected) {
		t.Fatalf("expected bulk %q, got %q", expected, b)
	}
}
