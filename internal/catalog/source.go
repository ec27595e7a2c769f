// Package catalog resolves a configured catalog source into a territory
// catalog. Sources are only read while a game runs; Import seeds SQL stores.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/internal/repository"
	"github.com/freeeve/diplomacy-plus/internal/repository/postgres"
	"github.com/freeeve/diplomacy-plus/internal/repository/sqlite"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

// Builtin names the compiled-in European board.
const Builtin = "builtin"

const sqlitePrefix = "sqlite://"

// Kind classifies a source string.
type Kind int

const (
	KindBuiltin Kind = iota
	KindFile
	KindPostgres
	KindSQLite
)

// Classify reports what kind of source s names and the location within it.
// "postgres" alone means the configured database URL.
func Classify(s, databaseURL string) (Kind, string) {
	switch {
	case s == "" || s == Builtin:
		return KindBuiltin, ""
	case s == "postgres":
		return KindPostgres, databaseURL
	case strings.HasPrefix(s, "postgres://"), strings.HasPrefix(s, "postgresql://"):
		return KindPostgres, s
	case strings.HasPrefix(s, sqlitePrefix):
		return KindSQLite, strings.TrimPrefix(s, sqlitePrefix)
	default:
		return KindFile, s
	}
}

// Open loads the catalog named by source.
func Open(ctx context.Context, source, databaseURL string) (*diplomacy.Catalog, error) {
	kind, loc := Classify(source, databaseURL)
	var (
		c   *diplomacy.Catalog
		err error
	)
	switch kind {
	case KindBuiltin:
		c = diplomacy.StandardCatalog()
	case KindFile:
		c, err = openFile(loc)
	case KindPostgres:
		err = withStore(ctx, kind, loc, func(s repository.CatalogStore) error {
			c, err = s.LoadCatalog(ctx)
			return err
		})
	case KindSQLite:
		if _, statErr := os.Stat(loc); statErr != nil {
			return nil, fmt.Errorf("catalog %s: %w", source, statErr)
		}
		err = withStore(ctx, kind, loc, func(s repository.CatalogStore) error {
			c, err = s.LoadCatalog(ctx)
			return err
		})
	}
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", describe(kind, loc), err)
	}
	log.Info().Str("source", describe(kind, loc)).Int("territories", c.Len()).Msg("Catalog loaded")
	return c, nil
}

// Import writes c into the SQL store named by dest, replacing what is there.
func Import(ctx context.Context, c *diplomacy.Catalog, dest, databaseURL string) error {
	kind, loc := Classify(dest, databaseURL)
	if kind != KindPostgres && kind != KindSQLite {
		return fmt.Errorf("catalog import: %q is not a database destination", dest)
	}
	err := withStore(ctx, kind, loc, func(s repository.CatalogStore) error {
		return s.ImportCatalog(ctx, c)
	})
	if err != nil {
		return fmt.Errorf("catalog import %s: %w", describe(kind, loc), err)
	}
	log.Info().Str("dest", describe(kind, loc)).Int("territories", c.Len()).Msg("Catalog imported")
	return nil
}

func openFile(path string) (*diplomacy.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return diplomacy.DecodeCatalog(f)
}

func withStore(ctx context.Context, kind Kind, loc string, fn func(repository.CatalogStore) error) error {
	var (
		db    *sql.DB
		store repository.CatalogStore
		err   error
	)
	switch kind {
	case KindPostgres:
		db, err = postgres.Connect(ctx, loc)
		if err != nil {
			return err
		}
		if err = postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return err
		}
		store = postgres.NewTerritoryRepo(db)
	case KindSQLite:
		db, err = sqlite.Open(ctx, loc)
		if err != nil {
			return err
		}
		store = sqlite.NewTerritoryRepo(db)
	default:
		return fmt.Errorf("source kind %d has no store", kind)
	}
	defer db.Close()
	return fn(store)
}

// describe names a source without leaking database credentials.
func describe(kind Kind, loc string) string {
	switch kind {
	case KindBuiltin:
		return Builtin
	case KindPostgres:
		return "postgres"
	case KindSQLite:
		return sqlitePrefix + loc
	default:
		return loc
	}
}
