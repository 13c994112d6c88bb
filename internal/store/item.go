package store

import (
	"database/sql"
	"fmt"

	"github.com/checklistia/checklistia/internal/model"
	"github.com/shopspring/decimal"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var price string
	var purchased int
	var responsibleID, creatorID sql.NullInt64

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Name, &price, &item.Details,
		&purchased, &item.RecipeName, &responsibleID, &item.ResponsibleName,
		&creatorID, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.CalculatedPrice, err = decimal.NewFromString(price)
	if err != nil {
		// Defensive coercion: an unparseable stored price counts as zero.
		item.CalculatedPrice = decimal.Zero
	}
	item.DisplayPrice = model.FormatBRL(item.CalculatedPrice)
	item.IsPurchased = purchased != 0
	if responsibleID.Valid {
		item.ResponsibleID = &responsibleID.Int64
	}
	if creatorID.Valid {
		item.CreatorID = &creatorID.Int64
	}
	return &item, nil
}

const itemCols = `id, list_id, name, price, details, is_purchased, recipe_name, responsible_id, responsible_name, creator_id, created_at`

func (s *ItemStore) GetByID(id int64) (*model.ShoppingItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) Create(listID int64, name string, price decimal.Decimal, details, recipeName string, responsibleID *int64, responsibleName string, creatorID *int64) (*model.ShoppingItem, error) {
	var rID, cID sql.NullInt64
	if responsibleID != nil {
		rID = sql.NullInt64{Int64: *responsibleID, Valid: true}
	}
	if creatorID != nil {
		cID = sql.NullInt64{Int64: *creatorID, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO items (list_id, name, price, details, recipe_name, responsible_id, responsible_name, creator_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		listID, name, price.String(), details, recipeName, rID, responsibleName, cID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// ListByList returns the list's items in insertion order.
func (s *ItemStore) ListByList(listID int64) ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM items WHERE list_id = ? ORDER BY created_at ASC, id ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Update(id int64, name string, price decimal.Decimal, details, recipeName string, responsibleID *int64, responsibleName string) (*model.ShoppingItem, error) {
	var rID sql.NullInt64
	if responsibleID != nil {
		rID = sql.NullInt64{Int64: *responsibleID, Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE items SET name = ?, price = ?, details = ?, recipe_name = ?, responsible_id = ?, responsible_name = ? WHERE id = ?`,
		name, price.String(), details, recipeName, rID, responsibleName, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(id)
}

func (s *ItemStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// TogglePurchased flips the purchased flag and returns the updated item.
func (s *ItemStore) TogglePurchased(id int64) (*model.ShoppingItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	_, err = s.db.Exec(
		`UPDATE items SET is_purchased = 1 - is_purchased WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle purchased: %w", err)
	}
	return s.GetByID(id)
}

// DeleteByRecipe removes every item of a recipe group from the list and
// returns how many were deleted.
func (s *ItemStore) DeleteByRecipe(listID int64, recipeName string) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM items WHERE list_id = ? AND recipe_name = ?`,
		listID, recipeName,
	)
	if err != nil {
		return 0, fmt.Errorf("delete recipe group: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// Clear removes every item from the list.
func (s *ItemStore) Clear(listID int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM items WHERE list_id = ?`, listID)
	if err != nil {
		return 0, fmt.Errorf("clear list: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
