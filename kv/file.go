package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a [Store] persisting all keys as a single JSON document on disk.
// It is the localStorage analog for desktop or CLI shells: writes go through
// a temp file plus rename so a crash never leaves a half-written document.
//
// A missing file starts empty. A file that no longer parses also starts
// empty; the document is a cache of client state, not a system of record.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFile opens (or initializes) the document at path.
func NewFile(path string) (*File, error) {
	f := &File{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &f.values); err != nil {
		// Corrupt document: discard and start over.
		f.values = make(map[string]string)
	}
	return f, nil
}

// Get implements [Store].
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements [Store].
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	return f.writeLocked()
}

// Remove implements [Store].
func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.writeLocked()
}

func (f *File) writeLocked() error {
	data, err := json.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("kv: encode %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
