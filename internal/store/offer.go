package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/checklistia/checklistia/internal/model"
	"github.com/shopspring/decimal"
)

type OfferStore struct {
	db *sql.DB
}

func NewOfferStore(db *sql.DB) *OfferStore {
	return &OfferStore{db: db}
}

func scanOffer(scanner interface{ Scan(...any) error }) (*model.Offer, error) {
	var o model.Offer
	var price string
	var validUntil sql.NullTime

	err := scanner.Scan(&o.ID, &o.ProductName, &o.Market, &price, &validUntil, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	o.Price, err = decimal.NewFromString(price)
	if err != nil {
		o.Price = decimal.Zero
	}
	if validUntil.Valid {
		o.ValidUntil = &validUntil.Time
	}
	return &o, nil
}

const offerCols = `id, product_name, market, price, valid_until, created_at`

func (s *OfferStore) Create(productName, market string, price decimal.Decimal, validUntil *time.Time) (*model.Offer, error) {
	var vu sql.NullTime
	if validUntil != nil {
		vu = sql.NullTime{Time: *validUntil, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO offers (product_name, market, price, valid_until) VALUES (?, ?, ?, ?)`,
		productName, market, price.String(), vu,
	)
	if err != nil {
		return nil, fmt.Errorf("insert offer: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *OfferStore) GetByID(id int64) (*model.Offer, error) {
	row := s.db.QueryRow(`SELECT `+offerCols+` FROM offers WHERE id = ?`, id)
	o, err := scanOffer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

// ListActive returns offers that have not expired, newest first.
func (s *OfferStore) ListActive() ([]model.Offer, error) {
	rows, err := s.db.Query(
		`SELECT ` + offerCols + ` FROM offers
		 WHERE valid_until IS NULL OR valid_until > datetime('now')
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var offers []model.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

func (s *OfferStore) Update(id int64, productName, market string, price decimal.Decimal, validUntil *time.Time) (*model.Offer, error) {
	var vu sql.NullTime
	if validUntil != nil {
		vu = sql.NullTime{Time: *validUntil, Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE offers SET product_name = ?, market = ?, price = ?, valid_until = ? WHERE id = ?`,
		productName, market, price.String(), vu, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	return s.GetByID(id)
}

func (s *OfferStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM offers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}
