package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/checklistia/checklistia/internal/model"
	"github.com/shopspring/decimal"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var instructions, tags string
	var createdBy sql.NullInt64

	err := scanner.Scan(&r.ID, &r.Name, &instructions, &r.PrepTime, &r.Difficulty, &r.CostTier, &tags, &createdBy, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(instructions), &r.Instructions); err != nil {
		return nil, fmt.Errorf("parse instructions: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
		return nil, fmt.Errorf("parse tags: %w", err)
	}
	if createdBy.Valid {
		r.CreatedBy = &createdBy.Int64
	}
	return &r, nil
}

const recipeCols = `id, name, instructions, prep_time, difficulty, cost_tier, tags, created_by, created_at`

// Create persists a recipe with its ingredients in one transaction.
func (s *RecipeStore) Create(r *model.Recipe) (*model.Recipe, error) {
	instructions, err := json.Marshal(r.Instructions)
	if err != nil {
		return nil, fmt.Errorf("marshal instructions: %w", err)
	}
	tags, err := json.Marshal(r.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	var createdBy sql.NullInt64
	if r.CreatedBy != nil {
		createdBy = sql.NullInt64{Int64: *r.CreatedBy, Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO recipes (name, instructions, prep_time, difficulty, cost_tier, tags, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Name, string(instructions), r.PrepTime, r.Difficulty, r.CostTier, string(tags), createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, ing := range r.Ingredients {
		_, err := tx.Exec(
			`INSERT INTO recipe_ingredients (recipe_id, simple_name, detailed_name, estimated_price)
			 VALUES (?, ?, ?, ?)`,
			id, ing.SimpleName, ing.DetailedName, ing.EstimatedPrice.String(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert ingredient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) GetByID(id int64) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	r.Ingredients, err = s.listIngredients(id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns all catalog recipes ordered by name, without ingredients.
func (s *RecipeStore) List() ([]model.Recipe, error) {
	rows, err := s.db.Query(`SELECT ` + recipeCols + ` FROM recipes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

func (s *RecipeStore) listIngredients(recipeID int64) ([]model.RecipeIngredient, error) {
	rows, err := s.db.Query(
		`SELECT id, recipe_id, simple_name, detailed_name, estimated_price
		 FROM recipe_ingredients WHERE recipe_id = ? ORDER BY id ASC`,
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []model.RecipeIngredient
	for rows.Next() {
		var ing model.RecipeIngredient
		var price string
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.SimpleName, &ing.DetailedName, &price); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ing.EstimatedPrice, err = decimal.NewFromString(price)
		if err != nil {
			ing.EstimatedPrice = decimal.Zero
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (s *RecipeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
