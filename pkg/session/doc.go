/*
Package session coordinates access to conversation snapshots held by hosts.

A Manager serialises every operation on a session ID through a reference-counted
local mutex and, when configured, a distributed lock, so that one candidate's
messages are applied strictly in order even across server replicas.
*/
package session
