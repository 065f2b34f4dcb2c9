package resp

var (
	CRLF = []byte("\r\n") // RESP 协议的行结束符
)

const (
	CR = '\r'
	LF = '\n'
)

// 类型首字节
const (
	SimpleStringByte = '+'
	IntegerByte      = ':'
	BulkStringByte   = '$'
	ArrayByte        = '*'
)

// Frame 是一个解码后的 RESP 值
// 只有本包内的类型可以实现它: SimpleString, BulkString, Integer, Array, Null
type Frame interface {
	// String 返回便于日志与错误信息展示的描述
	String() string

	frame()
}
