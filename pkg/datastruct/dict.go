package datastruct

import (
	"sync"
	"sync/atomic"
)

// DefaultShardCount 为 1 时退化为一把互斥锁保护的单个 map
const DefaultShardCount = 1

// Dict 抽象接口，屏蔽底层实现细节
type Dict[V any] interface {
	Get(key string) (val V, exists bool)
	Len() int
	Put(key string, val V) (result int) // 对应 Redis SET
}

// shard 单个分片结构
type shard[V any] struct {
	m     map[string]V
	mutex sync.Mutex // 读写都独占
}

// ConcurrentDict 并发安全的 Map
type ConcurrentDict[V any] struct {
	table      []*shard[V] // 分片切片
	count      atomic.Int32
	shardCount int
}

func MakeConcurrent[V any](shardCount int) *ConcurrentDict[V] {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shards := make([]*shard[V], shardCount)
	for i := 0; i < shardCount; i++ {
		shards[i] = &shard[V]{
			m: make(map[string]V),
		}
	}
	return &ConcurrentDict[V]{
		table:      shards,
		shardCount: shardCount,
	}
}

func (dict *ConcurrentDict[V]) Get(key string) (val V, exists bool) {
	s := dict.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	val, exists = s.m[key]
	return
}

func (dict *ConcurrentDict[V]) Put(key string, val V) (result int) {
	s := dict.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.m[key]; ok {
		s.m[key] = val
		return 0 // 覆盖
	}
	s.m[key] = val
	dict.count.Add(1)
	return 1 // 新增
}

func (dict *ConcurrentDict[V]) Len() int {
	return int(dict.count.Load())
}

// getShard 根据 key 定位分片
func (dict *ConcurrentDict[V]) getShard(key string) *shard[V] {
	if dict.shardCount == 1 {
		return dict.table[0]
	}
	hash := computeHash(key)
	return dict.table[hash%uint32(dict.shardCount)]
}

// FNV-1a
func computeHash(key string) uint32 {
	const prime32 = 16777619
	hash := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= prime32
	}
	return hash
}
