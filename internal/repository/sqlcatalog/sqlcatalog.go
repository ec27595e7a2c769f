// Package sqlcatalog reads and writes territory catalogs stored in the
// territories / territory_neighbors tables. Postgres and SQLite share it;
// only the placeholder syntax differs.
package sqlcatalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

// Placeholder renders the n-th (1-based) bind parameter.
type Placeholder func(n int) string

// Dollar renders Postgres-style $n placeholders.
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// Question renders SQLite-style ? placeholders.
func Question(int) string { return "?" }

// Load reads every territory and its neighbor list, ordered by position.
func Load(ctx context.Context, db *sql.DB) (*diplomacy.Catalog, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, kind, coastal, supply_center FROM territories ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("query territories: %w", err)
	}
	defer rows.Close()

	var defs []diplomacy.Territory
	index := make(map[string]int)
	for rows.Next() {
		var t diplomacy.Territory
		var kind string
		if err := rows.Scan(&t.Name, &kind, &t.Coastal, &t.SupplyCenter); err != nil {
			return nil, fmt.Errorf("scan territory: %w", err)
		}
		if t.Kind, err = diplomacy.ParseTerritoryKind(kind); err != nil {
			return nil, fmt.Errorf("%w: territory %q: %v", diplomacy.ErrMalformedCatalog, t.Name, err)
		}
		index[t.Name] = len(defs)
		defs = append(defs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate territories: %w", err)
	}

	nrows, err := db.QueryContext(ctx,
		`SELECT territory, neighbor FROM territory_neighbors ORDER BY territory, position`)
	if err != nil {
		return nil, fmt.Errorf("query neighbors: %w", err)
	}
	defer nrows.Close()
	for nrows.Next() {
		var from, to string
		if err := nrows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scan neighbor: %w", err)
		}
		i, ok := index[from]
		if !ok {
			return nil, fmt.Errorf("%w: neighbor row for unknown territory %q", diplomacy.ErrMalformedCatalog, from)
		}
		defs[i].Neighbors = append(defs[i].Neighbors, to)
	}
	if err := nrows.Err(); err != nil {
		return nil, fmt.Errorf("iterate neighbors: %w", err)
	}

	return diplomacy.NewCatalog(defs)
}

// Replace swaps the stored catalog for c inside a single transaction.
func Replace(ctx context.Context, db *sql.DB, ph Placeholder, c *diplomacy.Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM territory_neighbors`); err != nil {
		return fmt.Errorf("clear neighbors: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM territories`); err != nil {
		return fmt.Errorf("clear territories: %w", err)
	}

	insertTerr := fmt.Sprintf(
		`INSERT INTO territories (position, name, kind, coastal, supply_center) VALUES (%s, %s, %s, %s, %s)`,
		ph(1), ph(2), ph(3), ph(4), ph(5))
	insertNeighbor := fmt.Sprintf(
		`INSERT INTO territory_neighbors (territory, neighbor, position) VALUES (%s, %s, %s)`,
		ph(1), ph(2), ph(3))

	territories := c.Territories()
	for pos, t := range territories {
		if _, err := tx.ExecContext(ctx, insertTerr, pos, t.Name, t.Kind.String(), t.Coastal, t.SupplyCenter); err != nil {
			return fmt.Errorf("insert territory %q: %w", t.Name, err)
		}
	}
	for _, t := range territories {
		for pos, n := range t.Neighbors {
			if _, err := tx.ExecContext(ctx, insertNeighbor, t.Name, n, pos); err != nil {
				return fmt.Errorf("insert neighbor %q -> %q: %w", t.Name, n, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
