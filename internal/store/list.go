package store

import (
	"database/sql"
	"fmt"

	"github.com/checklistia/checklistia/internal/model"
	"github.com/shopspring/decimal"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.ShoppingList, error) {
	var l model.ShoppingList
	var budget sql.NullString
	err := scanner.Scan(&l.ID, &l.OwnerID, &l.Name, &budget, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if budget.Valid {
		b, err := decimal.NewFromString(budget.String)
		if err != nil {
			return nil, fmt.Errorf("parse budget %q: %w", budget.String, err)
		}
		l.Budget = &b
	}
	return &l, nil
}

const listCols = `id, owner_id, name, budget, created_at`

func (s *ListStore) Create(ownerID int64, name string) (*model.ShoppingList, error) {
	result, err := s.db.Exec(
		`INSERT INTO lists (owner_id, name) VALUES (?, ?)`,
		ownerID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) GetByID(id int64) (*model.ShoppingList, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

// GetActiveForUser returns the user's own list, creating it on first use.
func (s *ListStore) GetActiveForUser(userID int64) (*model.ShoppingList, error) {
	row := s.db.QueryRow(
		`SELECT `+listCols+` FROM lists WHERE owner_id = ? ORDER BY created_at ASC LIMIT 1`,
		userID,
	)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return s.Create(userID, "Minha Lista")
	}
	if err != nil {
		return nil, fmt.Errorf("get active list: %w", err)
	}
	return l, nil
}

// SetBudget sets or clears (nil) the list's budget ceiling.
func (s *ListStore) SetBudget(id int64, budget *decimal.Decimal) (*model.ShoppingList, error) {
	var value any
	if budget != nil {
		value = budget.String()
	}
	_, err := s.db.Exec(`UPDATE lists SET budget = ? WHERE id = ?`, value, id)
	if err != nil {
		return nil, fmt.Errorf("set budget: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) AddMember(listID, userID int64, role string) (*model.ListMember, error) {
	result, err := s.db.Exec(
		`INSERT INTO list_members (list_id, user_id, role) VALUES (?, ?, ?)
		 ON CONFLICT (list_id, user_id) DO UPDATE SET role = excluded.role`,
		listID, userID, role,
	)
	if err != nil {
		return nil, fmt.Errorf("add list member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(
		`SELECT id, list_id, user_id, role, created_at FROM list_members WHERE id = ?`, id,
	)
	var m model.ListMember
	if err := row.Scan(&m.ID, &m.ListID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("get list member: %w", err)
	}
	return &m, nil
}

func (s *ListStore) RemoveMember(listID, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM list_members WHERE list_id = ? AND user_id = ?`,
		listID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove list member: %w", err)
	}
	return nil
}

// CanAccess reports whether the user owns the list or is a member of it.
func (s *ListStore) CanAccess(listID, userID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM lists WHERE id = ? AND owner_id = ?`,
		listID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check list owner: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM list_members WHERE list_id = ? AND user_id = ?`,
		listID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check list member: %w", err)
	}
	return n > 0, nil
}

// MemberUserIDs returns the owner plus every member of the list.
func (s *ListStore) MemberUserIDs(listID int64) ([]int64, error) {
	rows, err := s.db.Query(
		`SELECT owner_id FROM lists WHERE id = ?
		 UNION
		 SELECT user_id FROM list_members WHERE list_id = ?`,
		listID, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list member ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
