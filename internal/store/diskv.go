package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskKV keeps one file per key directly under its base directory.
type DiskKV struct {
	d    *diskv.Diskv
	base string
}

// OpenDiskKV prepares dir for use as a KV store.
func OpenDiskKV(dir string) (*DiskKV, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	return &DiskKV{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 0, // other processes write the same files
			TempDir:      filepath.Join(dir, ".tmp"),
			FilePerm:     0o600,
			PathPerm:     0o700,
		}),
		base: dir,
	}, nil
}

func (k *DiskKV) Get(_ context.Context, key string) ([]byte, error) {
	v, err := k.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoKey
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return v, nil
}

func (k *DiskKV) Set(_ context.Context, key string, val []byte) error {
	if err := k.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (k *DiskKV) Delete(_ context.Context, key string) error {
	if !k.d.Has(key) {
		return nil
	}
	if err := k.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Dir is the directory holding the key files.
func (k *DiskKV) Dir() string { return k.base }

// DiskBackend is the file-per-key backend: the KV above plus a repository
// that keeps the whole collection under KeyEntries.
type DiskBackend struct {
	kv   *DiskKV
	repo *KVRepository
}

func OpenDiskBackend(dir string) (*DiskBackend, error) {
	kv, err := OpenDiskKV(dir)
	if err != nil {
		return nil, err
	}
	return &DiskBackend{kv: kv, repo: NewKVRepository(kv)}, nil
}

func (b *DiskBackend) Repository() Repository { return b.repo }
func (b *DiskBackend) KV() KV                 { return b.kv }
func (b *DiskBackend) Close() error           { return nil }
