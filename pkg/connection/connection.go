package connection

type Connection interface {
	// 读取一次当前可用的字节，约定一次读取恰好是一帧
	ReadChunk() ([]byte, error)

	// 写数据到客户端
	Write([]byte) (int, error)

	// 关闭连接
	Close() error

	// 连接是否已关闭
	IsClosed() bool

	// 获取客户端地址（用于日志）
	RemoteAddr() string

	// 连接唯一标识，用于串联日志
	ID() string
}
