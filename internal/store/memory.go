package store

import (
	"context"
	"sync"
)

type MemorySlot struct {
	mu      sync.RWMutex
	payload []byte
	written bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.written {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(s.payload))
	copy(out, s.payload)
	return out, nil
}

func (s *MemorySlot) Write(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = append(s.payload[:0], payload...)
	s.written = true
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
