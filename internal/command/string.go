package command

import (
	"respkv/internal/resp"
	"respkv/internal/types"
)

const (
	SetName = "set"
	GetName = "get"
)

// Set key value，无条件覆盖
type Set struct {
	Key   string
	Value []byte
}

func parseSet(args *Args) (Command, error) {
	key, err := args.NextString("key")
	if err != nil {
		return nil, err
	}
	value, err := args.NextBytes("value")
	if err != nil {
		return nil, err
	}
	return &Set{Key: key, Value: value}, nil
}

func (s *Set) run(store types.Storage) {
	store.Set(s.Key, s.Value)
}

func (s *Set) toResponse() resp.Frame {
	return resp.MakeOkReply()
}

// Get key，Result 在执行前为空
type Get struct {
	Key    string
	Result []byte
	Found  bool
}

func parseGet(args *Args) (Command, error) {
	key, err := args.NextString("key")
	if err != nil {
		return nil, err
	}
	return &Get{Key: key}, nil
}

func (g *Get) run(store types.Storage) {
	g.Result, g.Found = store.Get(g.Key)
}

func (g *Get) toResponse() resp.Frame {
	if !g.Found {
		return resp.Null{}
	}
	return resp.BulkString(g.Result)
}
