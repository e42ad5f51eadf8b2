package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	blob      StoredBlob
	expiresAt time.Time
}

// MemoryStore keeps blobs in process memory with TTL eviction. A background
// sweep drops expired entries; Get also checks expiry so a stale entry is
// never served between sweeps.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryStore) Put(data []byte, contentType, filename string) (string, error) {
	handle := uuid.New().String()

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.entries[handle] = memoryEntry{
		blob: StoredBlob{
			Handle:      handle,
			Filename:    filename,
			ContentType: contentType,
			Data:        buf,
		},
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return handle, nil
}

func (s *MemoryStore) Get(handle string) (*StoredBlob, error) {
	s.mu.RLock()
	entry, ok := s.entries[handle]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}

	blob := entry.blob
	return &blob, nil
}

func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for handle, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, handle)
				}
			}
			s.mu.Unlock()
		}
	}
}
