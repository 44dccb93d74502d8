// Package store declares the read-only contract for the persistent store of
// previously unified records. The store itself is an external collaborator;
// the core only consults it for cached matches and treats absence as an
// expected branch, never as an error.
package store

import (
	"context"

	"github.com/tamilstream/tamilstream/internal/models"
)

// ContentStore looks up previously unified records. Implementations live
// outside the core; NopStore stands in when no store is wired.
type ContentStore interface {
	// FindByNormalizedTitle returns a previously unified record for the
	// normalized title. found is false when no record exists.
	FindByNormalizedTitle(ctx context.Context, normalizedTitle string) (record models.UnifiedContent, found bool, err error)

	// FindByCatalogID returns a previously unified record for the catalog id.
	// found is false when no record exists.
	FindByCatalogID(ctx context.Context, catalogID int) (record models.UnifiedContent, found bool, err error)
}

// NopStore is a ContentStore with no backing storage: every lookup misses.
type NopStore struct{}

func (NopStore) FindByNormalizedTitle(context.Context, string) (models.UnifiedContent, bool, error) {
	return models.UnifiedContent{}, false, nil
}

func (NopStore) FindByCatalogID(context.Context, int) (models.UnifiedContent, bool, error) {
	return models.UnifiedContent{}, false, nil
}
