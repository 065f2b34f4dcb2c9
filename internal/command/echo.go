package command

import "respkv/internal/resp"

const EchoName = "echo"

// Echo 原样返回 message
type Echo struct {
	Message []byte
}

func parseEcho(args *Args) (Command, error) {
	message, err := args.NextBytes("message")
	if err != nil {
		return nil, err
	}
	return &Echo{Message: message}, nil
}

func (e *Echo) toResponse() resp.Frame {
	return resp.BulkString(e.Message)
}
