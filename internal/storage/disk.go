package storage

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DiskStore writes blobs under a media directory. The handle is the stored
// filename; retention is enforced by a sweep that unlinks files older than
// the TTL. Content types are tracked in memory and re-derived from the
// extension after a restart.
type DiskStore struct {
	dir  string
	ttl  time.Duration
	done chan struct{}
	once sync.Once

	mu    sync.RWMutex
	types map[string]string
}

func NewDiskStore(dir string, ttl time.Duration) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create media directory: %w", err)
	}

	s := &DiskStore{
		dir:   dir,
		ttl:   ttl,
		done:  make(chan struct{}),
		types: make(map[string]string),
	}
	go s.sweep()
	return s, nil
}

func (s *DiskStore) Put(data []byte, contentType, filename string) (string, error) {
	// The caller supplies a unique filename; it doubles as the handle so
	// download URLs stay stable across restarts.
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("could not write media file: %w", err)
	}

	s.mu.Lock()
	s.types[filepath.Base(filename)] = contentType
	s.mu.Unlock()

	return filepath.Base(filename), nil
}

func (s *DiskStore) Get(handle string) (*StoredBlob, error) {
	// Base() blocks path traversal through the handle.
	name := filepath.Base(handle)
	path := filepath.Join(s.dir, name)

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > s.ttl {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	contentType := s.types[name]
	s.mu.RUnlock()
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &StoredBlob{
		Handle:      name,
		Filename:    name,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *DiskStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *DiskStore) sweep() {
	interval := s.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *DiskStore) evictExpired() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > s.ttl {
			os.Remove(filepath.Join(s.dir, entry.Name()))
			s.mu.Lock()
			delete(s.types, entry.Name())
			s.mu.Unlock()
		}
	}
}
