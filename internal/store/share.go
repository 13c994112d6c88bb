package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/checklistia/checklistia/internal/model"
)

type ShareStore struct {
	db *sql.DB
}

func NewShareStore(db *sql.DB) *ShareStore {
	return &ShareStore{db: db}
}

func scanShare(scanner interface{ Scan(...any) error }) (*model.Share, error) {
	var sh model.Share
	err := scanner.Scan(&sh.ID, &sh.Token, &sh.ListID, &sh.MarketName, &sh.AuthorName, &sh.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

const shareCols = `id, token, list_id, market_name, author_name, created_at`

// Create issues a new share token and captures the given items under it.
// The share keeps resolving from this snapshot even after the source
// list is cleared. Share and line items are written in one transaction.
func (s *ShareStore) Create(listID int64, marketName, authorName string, items []model.ShoppingItem) (*model.Share, error) {
	token := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO shares (token, list_id, market_name, author_name) VALUES (?, ?, ?, ?)`,
		token, listID, marketName, authorName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert share: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, item := range items {
		_, err := tx.Exec(
			`INSERT INTO share_items (share_id, name, price, details, recipe_name) VALUES (?, ?, ?, ?, ?)`,
			id, item.Name, item.CalculatedPrice.String(), item.Details, item.RecipeName,
		)
		if err != nil {
			return nil, fmt.Errorf("insert share item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+shareCols+` FROM shares WHERE id = ?`, id)
	sh, err := scanShare(row)
	if err != nil {
		return nil, fmt.Errorf("get share: %w", err)
	}
	sh.Items, err = s.listItems(id)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// GetByToken returns the share with its captured items, or nil if the
// token is unknown.
func (s *ShareStore) GetByToken(token string) (*model.Share, error) {
	row := s.db.QueryRow(`SELECT `+shareCols+` FROM shares WHERE token = ?`, token)
	sh, err := scanShare(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get share by token: %w", err)
	}
	sh.Items, err = s.listItems(sh.ID)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *ShareStore) listItems(shareID int64) ([]model.SharedItem, error) {
	rows, err := s.db.Query(
		`SELECT id, share_id, name, price, details, recipe_name FROM share_items WHERE share_id = ? ORDER BY id ASC`,
		shareID,
	)
	if err != nil {
		return nil, fmt.Errorf("list share items: %w", err)
	}
	defer rows.Close()

	var items []model.SharedItem
	for rows.Next() {
		var item model.SharedItem
		var price string
		if err := rows.Scan(&item.ID, &item.ShareID, &item.Name, &price, &item.Details, &item.RecipeName); err != nil {
			return nil, fmt.Errorf("scan share item: %w", err)
		}
		item.Price, err = decimal.NewFromString(price)
		if err != nil {
			item.Price = decimal.Zero
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *ShareStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shares WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete share: %w", err)
	}
	return nil
}
