package ports

import (
	"context"

	"github.com/aretw0/talentscout/pkg/domain"
)

// SnapshotStore holds conversation snapshots for host-managed sessions.
// Implementations are hand-off buffers between requests, not candidate databases:
// entries may expire and nothing survives an explicit Delete.
type SnapshotStore interface {
	// Save stores the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
