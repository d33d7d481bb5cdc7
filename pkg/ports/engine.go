package ports

import (
	"context"

	"github.com/aretw0/talentscout/pkg/domain"
)

// StatelessScreener advances conversations whose state is held outside the core.
// This is the interface used by adapters (HTTP, MCP) that keep snapshots in a session store.
type StatelessScreener interface {
	// Open returns the messages shown when a session starts or is resumed in the given state:
	// the greeting, then the pending prompt if any.
	Open(ctx context.Context, snap *domain.Snapshot) ([]string, error)

	// Respond feeds one candidate message to the conversation in snap.
	// It returns the new snapshot, the reply and whether the host should keep accepting input.
	// The only error is domain.ErrInvalidSnapshot; conversation failures become reply text.
	Respond(ctx context.Context, snap *domain.Snapshot, input string) (*domain.Snapshot, string, bool, error)
}
