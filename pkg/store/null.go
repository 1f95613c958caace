package store

import "context"

// NullStore is a no-op store that never stores anything.
// Useful for testing or when the local tier should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore { return &NullStore{} }

// Get always returns a miss.
func (*NullStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (*NullStore) Set(context.Context, string, []byte) error { return nil }

// Delete does nothing.
func (*NullStore) Delete(context.Context, string) error { return nil }

// Clear does nothing.
func (*NullStore) Clear(context.Context) error { return nil }

// Close does nothing.
func (*NullStore) Close() error { return nil }

var _ Store = (*NullStore)(nil)
