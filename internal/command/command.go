package command

import (
	"fmt"
	"strings"

	"respkv/internal/resp"
	"respkv/internal/types"
)

// Command 是一次请求解析出的命令，只能是 *Ping, *Echo, *Set, *Get 之一
// 执行与生成响应都通过 type switch 完成，命令集合在编译期可枚举
type Command interface {
	command()
}

func (*Ping) command() {}
func (*Echo) command() {}
func (*Set) command()  {}
func (*Get) command()  {}

// FromFrame 校验帧是一个非空数组，并按第一个元素（大小写不敏感）分发解析
func FromFrame(f resp.Frame) (Command, error) {
	parts, err := validate(f)
	if err != nil {
		return nil, err
	}

	name, err := resp.AsString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("command name: %w", err)
	}

	switch lower := strings.ToLower(name); lower {
	case PingName:
		return parsePing(newArgs(lower, parts[1:]))
	case EchoName:
		return parseEcho(newArgs(lower, parts[1:]))
	case SetName:
		return parseSet(newArgs(lower, parts[1:]))
	case GetName:
		return parseGet(newArgs(lower, parts[1:]))
	default:
		return nil, &UnknownCommandError{Name: name}
	}
}

func validate(f resp.Frame) (resp.Array, error) {
	arr, ok := f.(resp.Array)
	if !ok || len(arr) == 0 {
		return nil, ErrInvalidArrayFrame
	}
	return arr, nil
}

// Execute 对需要访问存储的命令执行读写，Ping/Echo 无执行步骤
func Execute(cmd Command, store types.Storage) {
	switch c := cmd.(type) {
	case *Get:
		c.run(store)
	case *Set:
		c.run(store)
	case *Ping, *Echo:
	}
}

// Response 根据命令执行后的状态生成响应帧，无副作用
func Response(cmd Command) resp.Frame {
	switch c := cmd.(type) {
	case *Ping:
		return c.toResponse()
	case *Echo:
		return c.toResponse()
	case *Set:
		return c.toResponse()
	case *Get:
		return c.toResponse()
	default:
		panic(fmt.Sprintf("command: unexpected command type %T", cmd))
	}
}

// Name 返回命令的规范小写名称
func Name(cmd Command) string {
	switch cmd.(type) {
	case *Ping:
		return PingName
	case *Echo:
		return EchoName
	case *Set:
		return SetName
	case *Get:
		return GetName
	default:
		return "unknown"
	}
}
