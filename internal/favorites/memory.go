package favorites

import (
	"context"
	"slices"
	"sync"
)

// memorySlot keeps the value in process. Nothing survives a restart.
type memorySlot struct {
	mu    sync.Mutex
	value []byte
	set   bool
}

func NewMemorySlot() Slot {
	return &memorySlot{}
}

func (m *memorySlot) Get(ctx context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.value), m.set, nil
}

func (m *memorySlot) Set(ctx context.Context, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = slices.Clone(value)
	m.set = true
	return nil
}
