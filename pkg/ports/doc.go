/*
Package ports defines the driven ports (interfaces) of the TalentScout core.

These interfaces decouple the conversation logic from external implementations,
allowing hosts to plug in language models, snapshot stores and lock providers.

# Key Interfaces

  - LLM: Single-turn text generation used to produce interview questions.
  - StatelessScreener: Advances a conversation held as a domain.Snapshot.
  - SnapshotStore: Holds conversation snapshots between requests of a host session.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
