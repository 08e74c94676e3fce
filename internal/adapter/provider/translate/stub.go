package translate

import "context"

// Stub is a pass-through backend for offline runs: it returns the input
// unchanged, so combined examples keep only the original text.
type Stub struct{}

// NewStub creates a pass-through backend.
func NewStub() *Stub { return &Stub{} }

// Name identifies the backend in logs.
func (s *Stub) Name() string { return "none" }

// Translate returns text unchanged.
func (s *Stub) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}
