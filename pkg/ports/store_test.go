package ports_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/ports"
)

// MockStore is an in-memory SnapshotStore that round-trips through JSON.
type MockStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = b
	return nil
}

func (m *MockStore) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	m.mu.Lock()
	b, ok := m.data[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestSnapshotStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, NewMockStore())
}

func TestLLMFunc(t *testing.T) {
	var got string
	llm := ports.LLMFunc(func(ctx context.Context, prompt string) (string, error) {
		got = prompt
		return "ok", nil
	})

	out, err := llm.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" || got != "hello" {
		t.Errorf("expected prompt to pass through, got out=%q prompt=%q", out, got)
	}
}
