package types

// Storage 是命令执行时唯一可以读写的共享状态
type Storage interface {
	// Get 返回 key 对应值的副本，不存在时 ok 为 false
	Get(key string) (value []byte, ok bool)

	// Set 无条件写入或覆盖
	Set(key string, value []byte)
}
