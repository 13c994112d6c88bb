package store

import (
	"database/sql"
	"fmt"

	"github.com/checklistia/checklistia/internal/model"
	"github.com/shopspring/decimal"
)

type PurchaseStore struct {
	db *sql.DB
}

func NewPurchaseStore(db *sql.DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

func scanPurchase(scanner interface{ Scan(...any) error }) (*model.PurchaseRecord, error) {
	var p model.PurchaseRecord
	var total string
	err := scanner.Scan(&p.ID, &p.ListID, &p.UserID, &p.MarketName, &total, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Total, err = decimal.NewFromString(total)
	if err != nil {
		p.Total = decimal.Zero
	}
	return &p, nil
}

const purchaseCols = `id, list_id, user_id, market_name, total, created_at`

// Create archives the given items as an immutable purchase snapshot.
// Only purchased items count toward the total; every line is snapshotted
// so price history sees unpurchased entries too. The snapshot and its
// line items are written in one transaction.
func (s *PurchaseStore) Create(listID, userID int64, marketName string, items []model.ShoppingItem) (*model.PurchaseRecord, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.IsPurchased && item.CalculatedPrice.IsPositive() {
			total = total.Add(item.CalculatedPrice)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO purchases (list_id, user_id, market_name, total) VALUES (?, ?, ?, ?)`,
		listID, userID, marketName, total.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, item := range items {
		_, err := tx.Exec(
			`INSERT INTO purchase_items (purchase_id, name, price, details) VALUES (?, ?, ?, ?)`,
			id, item.Name, item.CalculatedPrice.String(), item.Details,
		)
		if err != nil {
			return nil, fmt.Errorf("insert purchase item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// GetByID returns the purchase with its line items, or nil if not found.
func (s *PurchaseStore) GetByID(id int64) (*model.PurchaseRecord, error) {
	row := s.db.QueryRow(`SELECT `+purchaseCols+` FROM purchases WHERE id = ?`, id)
	p, err := scanPurchase(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	p.Items, err = s.listItems(id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByUser returns the user's purchases newest first, line items included.
func (s *PurchaseStore) ListByUser(userID int64) ([]model.PurchaseRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+purchaseCols+` FROM purchases WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.PurchaseRecord
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range purchases {
		purchases[i].Items, err = s.listItems(purchases[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return purchases, nil
}

func (s *PurchaseStore) listItems(purchaseID int64) ([]model.HistoricItem, error) {
	rows, err := s.db.Query(
		`SELECT id, purchase_id, name, price, details FROM purchase_items WHERE purchase_id = ? ORDER BY id ASC`,
		purchaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()

	var items []model.HistoricItem
	for rows.Next() {
		var item model.HistoricItem
		var price string
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.Name, &price, &item.Details); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		item.Price, err = decimal.NewFromString(price)
		if err != nil {
			item.Price = decimal.Zero
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PurchaseStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}
