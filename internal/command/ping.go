package command

import "respkv/internal/resp"

const PingName = "ping"

// Ping 无参数，回复 PONG
type Ping struct{}

func parsePing(_ *Args) (Command, error) {
	return &Ping{}, nil
}

func (p *Ping) toResponse() resp.Frame {
	return resp.MakePongReply()
}
