// Package http exposes screening conversations over a JSON HTTP API.
//
// Sessions live in a ports.SnapshotStore behind a session.Manager, so the
// server itself is stateless and can be replicated when the store is shared.
package http
