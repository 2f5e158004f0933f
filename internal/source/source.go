// ABOUTME: Source is the boundary with the backend that supplies raw samples.
// ABOUTME: Implementations: REST backend, JSON/YAML file, local storage.
package source

import (
	"context"

	"github.com/harperreed/gymprogress/internal/models"
)

// Source fetches the raw Sample Store for a student. An empty studentID
// means the authenticated student's own data.
type Source interface {
	Fetch(ctx context.Context, studentID string) (models.Store, error)
}

// Func adapts a function to Source.
type Func func(ctx context.Context, studentID string) (models.Store, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, studentID string) (models.Store, error) {
	return f(ctx, studentID)
}

// Static is a Source that always returns a clone of the same store.
type Static models.Store

// Fetch returns a copy of the store.
func (s Static) Fetch(_ context.Context, _ string) (models.Store, error) {
	return models.Store(s).Clone(), nil
}
