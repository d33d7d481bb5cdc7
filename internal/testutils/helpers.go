// Package testutils holds fixtures shared by tests across packages.
package testutils

import (
	"context"
	"strings"
	"sync"
)

// ValidAnswers is one acceptable answer per field, in collection order.
var ValidAnswers = []string{
	"Jane Doe",
	"jane.doe@example.com",
	"+1 (555) 123-4567",
	"6 years",
	"Backend Engineer, SRE",
	"Lisbon, Portugal",
	"Go, PostgreSQL, Kubernetes",
}

// Transcript returns ValidAnswers plus a final message that triggers
// question generation, one per line.
func Transcript() string {
	return strings.Join(append(append([]string{}, ValidAnswers...), "ready"), "\n") + "\n"
}

// StubLLM is a ports.LLM returning a fixed reply and recording every prompt.
type StubLLM struct {
	Reply string
	Err   error

	mu      sync.Mutex
	prompts []string
}

// Generate records the prompt and returns the configured reply or error.
func (s *StubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}

// Prompts returns the prompts received so far.
func (s *StubLLM) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
