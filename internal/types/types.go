package types

import "strings"

// CmdLine 是命令行的别名，例如: set key val -> [][]byte
type CmdLine [][]byte

var writeCommands = map[string]struct{}{
	"set": {},
}

func (c CmdLine) IsWrite() bool {
	if len(c) == 0 {
		return false
	}
	return IsWriteCommand(string(c[0]))
}

// IsWriteCommand 判断命令名（大小写不敏感）是否会修改存储
func IsWriteCommand(name string) bool {
	_, ok := writeCommands[strings.ToLower(name)]
	return ok
}

// Entry 存储中的一条记录，值是不透明的字节序列
type Entry struct {
	Value []byte
}
