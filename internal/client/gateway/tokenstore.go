// Copyright (c) 2026 StudyMate. All rights reserved.

/*
Package gateway is the Go client for the StudyMate API.

It mirrors what the browser client does: attach the stored session token to
every request, surface server error messages verbatim, and treat logout as a
local action first. CLI tools and integration harnesses use it instead of
hand-rolling HTTP calls.
*/
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenKey is the key the session token is stored under, matching the
// browser client's localStorage entry.
const TokenKey = "token"

// TokenStore persists the session token between runs.
type TokenStore interface {
	// Get returns the stored token, or "" when none is stored.
	Get() (string, error)

	// Set stores the token, replacing any previous one.
	Set(token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// # File-Backed Store

// FileTokenStore keeps the token in a small JSON file, the CLI counterpart
// of the browser's localStorage.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore creates a store at the given path. Parent directories
// are created on first write.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Get reads the token from disk. A missing file means no session.
func (store *FileTokenStore) Get() (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	raw, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("token_store_read_failed: %w", err)
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return "", fmt.Errorf("token_store_decode_failed: %w", err)
	}

	return entries[TokenKey], nil
}

// Set writes the token to disk with owner-only permissions.
func (store *FileTokenStore) Set(token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("token_store_mkdir_failed: %w", err)
	}

	raw, err := json.Marshal(map[string]string{TokenKey: token})
	if err != nil {
		return fmt.Errorf("token_store_encode_failed: %w", err)
	}

	if err := os.WriteFile(store.path, raw, 0o600); err != nil {
		return fmt.Errorf("token_store_write_failed: %w", err)
	}

	return nil
}

// Clear removes the token file.
func (store *FileTokenStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("token_store_clear_failed: %w", err)
	}

	return nil
}

// # In-Memory Store

// MemoryTokenStore holds the token in memory. Used by tests and short-lived
// tools that do not want a session surviving the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Get returns the stored token.
func (store *MemoryTokenStore) Get() (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, nil
}

// Set stores the token.
func (store *MemoryTokenStore) Set(token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
	return nil
}

// Clear removes the token.
func (store *MemoryTokenStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
	return nil
}
