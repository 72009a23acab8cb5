package store

import (
	"context"
	"slices"
	"sync"
)

type memRepo struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryRepo 进程内实现，测试与模拟器使用
func NewMemoryRepo() Repo {
	return &memRepo{records: make(map[string][]byte)}
}

func (m *memRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(data), true, nil
}

func (m *memRepo) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = slices.Clone(data)
	return nil
}
