package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorePutGet(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), time.Minute)
	require.NoError(t, err)
	defer store.Close()

	handle, err := store.Put([]byte("video bytes"), "video/mp4", "clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", handle)

	blob, err := store.Get(handle)
	require.NoError(t, err)
	assert.Equal(t, []byte("video bytes"), blob.Data)
	assert.Equal(t, "video/mp4", blob.ContentType)
}

func TestDiskStoreUnknownHandle(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), time.Minute)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get("missing.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreBlocksPathTraversal(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "..", "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0644))

	store, err := NewDiskStore(filepath.Join(dir, "media"), time.Minute)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get("../secret.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreContentTypeFromExtensionAfterRestart(t *testing.T) {
	dir := t.TempDir()

	first, err := NewDiskStore(dir, time.Minute)
	require.NoError(t, err)
	_, err = first.Put([]byte("data"), "image/jpeg", "photo.jpg")
	require.NoError(t, err)
	first.Close()

	// A fresh store has no in-memory type map; extension carries it.
	second, err := NewDiskStore(dir, time.Minute)
	require.NoError(t, err)
	defer second.Close()

	blob, err := second.Get("photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", blob.ContentType)
}

func TestDiskStoreExpiry(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, 10*time.Millisecond)
	require.NoError(t, err)
	defer store.Close()

	handle, err := store.Put([]byte("old"), "image/jpeg", "old.jpg")
	require.NoError(t, err)

	// Backdate the file past the TTL.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.jpg"), past, past))

	_, err = store.Get(handle)
	assert.ErrorIs(t, err, ErrNotFound)

	store.evictExpired()
	_, statErr := os.Stat(filepath.Join(dir, "old.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}
