package store

import "context"

// Repo 定义按 key 存取整条记录的抽象
type Repo interface {
	// Load 返回 key 对应的原始数据；不存在时 ok=false
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Save 整体覆盖（后写覆盖先写）
	Save(ctx context.Context, key string, data []byte) error
}
