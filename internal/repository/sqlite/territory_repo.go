package sqlite

import (
	"context"
	"database/sql"

	"github.com/freeeve/diplomacy-plus/internal/repository/sqlcatalog"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

// TerritoryRepo reads and seeds the territory catalog in SQLite.
type TerritoryRepo struct {
	db *sql.DB
}

// NewTerritoryRepo creates a TerritoryRepo.
func NewTerritoryRepo(db *sql.DB) *TerritoryRepo {
	return &TerritoryRepo{db: db}
}

// LoadCatalog reads all territories in stored order.
func (r *TerritoryRepo) LoadCatalog(ctx context.Context) (*diplomacy.Catalog, error) {
	return sqlcatalog.Load(ctx, r.db)
}

// ImportCatalog replaces the stored catalog with c.
func (r *TerritoryRepo) ImportCatalog(ctx context.Context, c *diplomacy.Catalog) error {
	return sqlcatalog.Replace(ctx, r.db, sqlcatalog.Question, c)
}
