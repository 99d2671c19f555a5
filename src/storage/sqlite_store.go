// backend/src/storage/sqlite_store.go
package storage

import (
	"database/sql"
	"fmt"

	"github.com/username/alphatrade/backend/src/logger"
	"github.com/username/alphatrade/backend/src/models"
	"github.com/username/alphatrade/backend/src/services"
)

// SQLiteStore persists portfolio snapshots in two tables, assets and
// transactions. Every row is tagged with a mode so the MOCK and REAL
// universes never mix. The store holds no business logic.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle. The schema is managed by the
// migrations under db/migrations.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

var _ services.PortfolioStore = (*SQLiteStore)(nil)

// LoadAssets returns the asset set for a mode in stored order. An empty
// namespace yields the seed portfolio rather than an absence signal.
func (s *SQLiteStore) LoadAssets(mode string) ([]models.Asset, error) {
	rows, err := s.db.Query(`
		SELECT id, symbol, name, quantity, avg_cost, current_price, asset_type
		FROM assets WHERE mode = ? ORDER BY position`, mode)
	if err != nil {
		return nil, fmt.Errorf("querying assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.Symbol, &a.Name, &a.Quantity, &a.AvgCost, &a.CurrentPrice, &a.Type); err != nil {
			return nil, fmt.Errorf("scanning asset row: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(assets) == 0 {
		logger.L.Debug("No stored assets, returning seed data", "mode", mode)
		return SeedAssets(), nil
	}
	return assets, nil
}

// LoadTransactions returns the history for a mode, newest first. An empty
// namespace yields the seed history.
func (s *SQLiteStore) LoadTransactions(mode string) ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, date, symbol, side, price, quantity, total
		FROM transactions WHERE mode = ? ORDER BY position`, mode)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Symbol, &t.Side, &t.Price, &t.Quantity, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		logger.L.Debug("No stored transactions, returning seed data", "mode", mode)
		return SeedTransactions(), nil
	}
	return transactions, nil
}

// SaveSnapshot replaces both record sets for a mode inside one database
// transaction, so a trade can never land with assets updated but its
// transaction record missing, or vice versa.
func (s *SQLiteStore) SaveSnapshot(mode string, assets []models.Asset, transactions []models.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM assets WHERE mode = ?`, mode); err != nil {
		return fmt.Errorf("clearing assets: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM transactions WHERE mode = ?`, mode); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}

	assetStmt, err := tx.Prepare(`
		INSERT INTO assets (mode, id, symbol, name, quantity, avg_cost, current_price, asset_type, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing asset insert: %w", err)
	}
	defer assetStmt.Close()
	for i, a := range assets {
		if _, err := assetStmt.Exec(mode, a.ID, a.Symbol, a.Name, a.Quantity, a.AvgCost, a.CurrentPrice, string(a.Type), i); err != nil {
			return fmt.Errorf("inserting asset %s: %w", a.Symbol, err)
		}
	}

	txStmt, err := tx.Prepare(`
		INSERT INTO transactions (mode, id, date, symbol, side, price, quantity, total, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing transaction insert: %w", err)
	}
	defer txStmt.Close()
	for i, t := range transactions {
		if _, err := txStmt.Exec(mode, t.ID, t.Date, t.Symbol, string(t.Side), t.Price, t.Quantity, t.Total, i); err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}
