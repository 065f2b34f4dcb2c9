package command

import (
	"errors"
	"fmt"
)

// 命令级别错误：帧本身合法，但不是一个有效的命令调用
var (
	ErrInvalidArrayFrame = errors.New("command: frame is not an array frame or empty")
	ErrIncorrectArg      = errors.New("command: wrong argument type")
	ErrMissingArg        = errors.New("command: missing argument")
	ErrUnknownCommand    = errors.New("command: unknown command")
)

// IncorrectArgError 参数存在但不是 BulkString
type IncorrectArgError struct {
	Command string
	Arg     string // 出错帧的文本描述
}

func (e *IncorrectArgError) Error() string {
	return fmt.Sprintf("command: wrong arg - %s, for %s", e.Arg, e.Command)
}

func (e *IncorrectArgError) Is(target error) bool { return target == ErrIncorrectArg }

// MissingArgError 参数个数不足
type MissingArgError struct {
	Command string
	ArgName string
}

func (e *MissingArgError) Error() string {
	return fmt.Sprintf("command: wrong or missing args for %s, args - %s", e.Command, e.ArgName)
}

func (e *MissingArgError) Is(target error) bool { return target == ErrMissingArg }

// UnknownCommandError 保留客户端发送时的大小写
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("command: unknown command `%s`", e.Name)
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

// IsCommandError 判断 err 是否属于命令级别错误
func IsCommandError(err error) bool {
	return errors.Is(err, ErrInvalidArrayFrame) ||
		errors.Is(err, ErrIncorrectArg) ||
		errors.Is(err, ErrMissingArg) ||
		errors.Is(err, ErrUnknownCommand)
}
