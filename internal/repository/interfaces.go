package repository

import (
	"context"

	"github.com/freeeve/diplomacy-plus/internal/model"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

// CatalogSource loads territory definitions. Sources are read once at
// startup and never written to by the game.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*diplomacy.Catalog, error)
}

// CatalogStore is a CatalogSource that can also be seeded.
type CatalogStore interface {
	CatalogSource
	ImportCatalog(ctx context.Context, c *diplomacy.Catalog) error
}

// MoveLog keeps the accepted moves of a live session (Redis or in-memory).
type MoveLog interface {
	AppendMove(ctx context.Context, ev model.MoveEvent) error
	RecentMoves(ctx context.Context, sessionID string, n int) ([]model.MoveEvent, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
