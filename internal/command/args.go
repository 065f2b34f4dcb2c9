package command

import (
	"fmt"
	"unicode/utf8"

	"respkv/internal/resp"
)

// Args 是命令参数的游标，不包含命令名本身
type Args struct {
	command string
	items   []resp.Frame
	pos     int
}

func newArgs(command string, items []resp.Frame) *Args {
	return &Args{command: command, items: items}
}

// NextBytes 取下一个 BulkString 参数
func (a *Args) NextBytes(argName string) ([]byte, error) {
	if a.pos >= len(a.items) {
		return nil, &MissingArgError{Command: a.command, ArgName: argName}
	}
	item := a.items[a.pos]
	a.pos++

	bulk, ok := item.(resp.BulkString)
	if !ok {
		return nil, &IncorrectArgError{Command: a.command, Arg: item.String()}
	}
	return bulk, nil
}

// NextString 取下一个参数并要求是合法 UTF-8
func (a *Args) NextString(argName string) (string, error) {
	b, err := a.NextBytes(argName)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %s argument of %s", resp.ErrStringInterpretation, argName, a.command)
	}
	return string(b), nil
}
