package cache

import (
	"context"
	"sync"

	"spl-ac-seq-parse/internal/logic/domain"
)

const defaultMemoryCapacity = 1024

// MemoryRecordStore 进程内缓存，容量满时按写入顺序淘汰最早的记录
type MemoryRecordStore struct {
	mu       sync.RWMutex
	records  map[string]*domain.TransactionRecord
	order    []string // 写入顺序，用于淘汰
	capacity int
}

func NewMemoryRecordStore(capacity int) *MemoryRecordStore {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryRecordStore{
		records:  make(map[string]*domain.TransactionRecord, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

func (m *MemoryRecordStore) Get(_ context.Context, signature string) (*domain.TransactionRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[signature]
	return rec, ok, nil
}

func (m *MemoryRecordStore) Put(_ context.Context, signature string, record *domain.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[signature]; ok {
		m.records[signature] = record
		return nil
	}
	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.records, oldest)
	}
	m.records[signature] = record
	m.order = append(m.order, signature)
	return nil
}

func (m *MemoryRecordStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
