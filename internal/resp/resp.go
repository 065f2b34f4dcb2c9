package resp

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// SimpleString +<text>\r\n
type SimpleString []byte

// BulkString $<len>\r\n<bytes>\r\n
type BulkString []byte

// Integer :<number>\r\n
type Integer int64

// Array *<n>\r\n 之后跟 n 个元素
type Array []Frame

// Null 空 Bulk String，编码为 $-1\r\n
type Null struct{}

func (SimpleString) frame() {}
func (BulkString) frame()   {}
func (Integer) frame()      {}
func (Array) frame()        {}
func (Null) frame()         {}

func (s SimpleString) String() string { return fmt.Sprintf("Simple string - %q", []byte(s)) }
func (b BulkString) String() string   { return fmt.Sprintf("Bulk string - %q", []byte(b)) }
func (i Integer) String() string      { return "Integer - " + strconv.FormatInt(int64(i), 10) }
func (Null) String() string           { return "Null" }

func (a Array) String() string {
	return fmt.Sprintf("Array - %v", []Frame(a))
}

var (
	okReply   = SimpleString("OK")
	pongReply = SimpleString("PONG")
	nullBulk  = []byte("$-1\r\n")
)

func MakeOkReply() SimpleString {
	return okReply
}

func MakePongReply() SimpleString {
	return pongReply
}

// Encode 将 Frame 序列化为 RESP 字节流
// Integer 与 Array 暂未实现，调用即 panic
func Encode(f Frame) []byte {
	switch v := f.(type) {
	case SimpleString:
		return encodeSimpleString(v)
	case BulkString:
		return encodeBulkString(v)
	case Null:
		return encodeNull()
	default:
		panic(fmt.Sprintf("resp: encoding %T is not implemented", f))
	}
}

func encodeSimpleString(v SimpleString) []byte {
	buf := make([]byte, 0, 3+len(v))
	buf = append(buf, SimpleStringByte)
	buf = append(buf, v...)
	buf = append(buf, CRLF...)
	return buf
}

func encodeBulkString(v BulkString) []byte {
	n := strconv.Itoa(len(v))
	buf := make([]byte, 0, 5+len(n)+len(v))

	// $5\r\n
	buf = append(buf, BulkStringByte)
	buf = append(buf, n...)
	buf = append(buf, CRLF...)
	// hello\r\n
	buf = append(buf, v...)
	buf = append(buf, CRLF...)
	return buf
}

func encodeNull() []byte {
	out := make([]byte, len(nullBulk))
	copy(out, nullBulk)
	return out
}

// AsString 把 SimpleString / BulkString 解释为 UTF-8 字符串
func AsString(f Frame) (string, error) {
	var raw []byte
	switch v := f.(type) {
	case SimpleString:
		raw = v
	case BulkString:
		raw = v
	default:
		return "", ErrStringInterpretation
	}
	if !utf8.Valid(raw) {
		return "", ErrStringInterpretation
	}
	return string(raw), nil
}

// CmdLine 把由 BulkString 组成的数组展开为 [][]byte，便于日志输出
func (a Array) CmdLine() [][]byte {
	line := make([][]byte, 0, len(a))
	for _, item := range a {
		switch v := item.(type) {
		case BulkString:
			line = append(line, v)
		case SimpleString:
			line = append(line, v)
		default:
			line = append(line, []byte(item.String()))
		}
	}
	return line
}
