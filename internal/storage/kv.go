// Package storage persists the tracker's records in a local key-value store.
// Each logical record (users, categories, sessions, the active session,
// settings) lives under one key as a JSON document. The sqlite backend is the
// durable store; Memory backs tests.
package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// KV is the raw key-value contract: JSON documents under string keys.
type KV interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var (
	_ KV = (*Memory)(nil)
	_ KV = (*SQLite)(nil)
)

// Memory is an in-process KV used by tests.
type Memory struct {
	mu      sync.Mutex
	records map[string]json.RawMessage

	// FailPuts makes every Put return this error, for exercising the
	// fire-and-forget persistence path.
	FailPuts error
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]json.RawMessage)}
}

func (m *Memory) Get(ctx context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.records[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *Memory) Put(ctx context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts != nil {
		return m.FailPuts
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.records[key] = raw
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *Memory) Close() error { return nil }
