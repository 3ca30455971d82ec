package chat

import (
	"context"
	"encoding/json"
	"sync"
)

// StorageName is the fixed key prefix of the persisted chat state blob.
const StorageName = "chat-session-storage"

// Persister stores one visitor's chat state as a JSON blob, plus the
// transient UI flags as a side entry. Implementations: MemoryPersister for
// tests, redisstore.Store in production.
type Persister interface {
	Load(ctx context.Context, visitorID string) (State, bool, error)
	Save(ctx context.Context, visitorID string, st State) error

	LoadFlags(ctx context.Context, visitorID string) (Flags, error)
	SaveFlags(ctx context.Context, visitorID string, f Flags) error
}

// MemoryPersister keeps blobs in-process. States are stored marshaled so
// callers never share slices with the persisted copy.
type MemoryPersister struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	flags map[string]Flags
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{
		blobs: make(map[string][]byte),
		flags: make(map[string]Flags),
	}
}

func (p *MemoryPersister) Load(ctx context.Context, visitorID string) (State, bool, error) {
	_ = ctx
	p.mu.RLock()
	blob, ok := p.blobs[visitorID]
	p.mu.RUnlock()
	if !ok {
		return State{}, false, nil
	}

	var st State
	if err := json.Unmarshal(blob, &st); err != nil {
		return State{}, false, err
	}
	return st, true, nil
}

func (p *MemoryPersister) Save(ctx context.Context, visitorID string, st State) error {
	_ = ctx
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.blobs[visitorID] = blob
	p.mu.Unlock()
	return nil
}

func (p *MemoryPersister) LoadFlags(ctx context.Context, visitorID string) (Flags, error) {
	_ = ctx
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.flags[visitorID], nil
}

func (p *MemoryPersister) SaveFlags(ctx context.Context, visitorID string, f Flags) error {
	_ = ctx
	p.mu.Lock()
	p.flags[visitorID] = f
	p.mu.Unlock()
	return nil
}
