// Package registry records which subsystems of a bundle are fully persisted.
//
// A subsystem is available when its key is present in the corpus store's
// models table. Keys are only added after everything the subsystem needs has
// been written, so readers can rely on a present key.
package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/storage"
)

// Known subsystems.
const (
	Corpus   = "corpus"
	LDAModel = "lda model"
)

// ErrUnknownSubsystem indicates a subsystem key without a registered description.
var ErrUnknownSubsystem = errors.New("unknown subsystem")

var descriptions = map[string]string{
	Corpus:   "Text corpus",
	LDAModel: "LDA model",
}

// Description returns the human-readable description stored for subsystem.
func Description(subsystem string) (string, error) {
	desc, ok := descriptions[subsystem]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSubsystem, subsystem)
	}
	return desc, nil
}

// Registry reads and writes availability flags.
type Registry struct {
	store storage.ModelRegistry
}

// New creates a Registry on store.
func New(store storage.ModelRegistry) *Registry {
	return &Registry{store: store}
}

// MarkAvailable flags subsystem as available. Marking twice is harmless.
func (r *Registry) MarkAvailable(ctx context.Context, subsystem string) error {
	desc, err := Description(subsystem)
	if err != nil {
		return err
	}
	if err := r.store.AddModel(ctx, subsystem, desc); err != nil {
		return fmt.Errorf("%w: marking %q available: %w", core.ErrStoreAccess, subsystem, err)
	}
	return nil
}

// IsAvailable reports whether subsystem has been marked available.
func (r *Registry) IsAvailable(ctx context.Context, subsystem string) (bool, error) {
	available, err := r.Available(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(available, subsystem), nil
}

// Available returns the keys of every available subsystem, sorted.
func (r *Registry) Available(ctx context.Context) ([]string, error) {
	entries, err := r.store.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading registry: %w", core.ErrStoreAccess, err)
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	slices.Sort(keys)
	return keys, nil
}
