package database

import (
	"respkv/internal/common"
	"respkv/internal/types"
	"respkv/pkg/datastruct"
)

// DB 进程内唯一的键值存储，所有连接共享
type DB struct {
	data datastruct.Dict[*types.Entry] // Key -> Entry
}

var _ types.Storage = (*DB)(nil)

// MakeDB 创建存储，shards 为 1 时所有读写串行化在同一把锁上
func MakeDB(shards int) *DB {
	return &DB{
		data: datastruct.MakeConcurrent[*types.Entry](shards),
	}
}

// Get 返回值的副本，调用方修改返回值不会影响存储
func (db *DB) Get(key string) ([]byte, bool) {
	entry, ok := db.data.Get(key)
	if !ok {
		return nil, false
	}
	return common.CloneBytes(entry.Value), true
}

// Set 无条件覆盖
func (db *DB) Set(key string, value []byte) {
	db.data.Put(key, &types.Entry{Value: common.CloneBytes(value)})
}

// Len 当前 key 数量
func (db *DB) Len() int {
	return db.data.Len()
}
