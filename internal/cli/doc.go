// Package cli wires configuration, adapters and the assistant for the talentscout commands.
package cli
