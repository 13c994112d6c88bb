package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/checklistia/checklistia/internal/ai"
	"github.com/checklistia/checklistia/internal/auth"
	"github.com/checklistia/checklistia/internal/match"
	"github.com/checklistia/checklistia/internal/model"
	"github.com/checklistia/checklistia/internal/store"
	"github.com/checklistia/checklistia/internal/websocket"
)

// Synthesizer is the slice of the generative client the recipe handler
// needs. Nil when no API key is configured.
type Synthesizer interface {
	SynthesizeRecipe(ctx context.Context, name string) (*ai.RecipeDraft, error)
	GenerateCatalog(ctx context.Context, theme string, count int) ([]ai.RecipeDraft, error)
}

type RecipeHandler struct {
	recipeStore *store.RecipeStore
	itemStore   *store.ItemStore
	synthesizer Synthesizer
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewRecipeHandler(rs *store.RecipeStore, is *store.ItemStore, synth Synthesizer, hub *websocket.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeStore: rs,
		itemStore:   is,
		synthesizer: synth,
		hub:         hub,
		logger:      logger,
	}
}

// List returns the catalog ordered by name, without ingredients.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeStore.List()
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe ID")
		return
	}

	recipe, err := h.recipeStore.GetByID(id)
	if err != nil {
		h.logger.Error("get recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load recipe")
		return
	}
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

type synthesizeRequest struct {
	Name string `json:"name"`
	Save bool   `json:"save"`
}

// Synthesize generates a recipe draft for the given dish name. With save
// set, the draft is persisted to the catalog.
func (h *RecipeHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if h.synthesizer == nil {
		writeError(w, http.StatusServiceUnavailable, "recipe synthesis is not configured")
		return
	}

	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	draft, err := h.synthesizer.SynthesizeRecipe(r.Context(), req.Name)
	if err != nil {
		h.writeAIError(w, "synthesize recipe", err)
		return
	}

	if !req.Save {
		writeJSON(w, http.StatusOK, draft)
		return
	}

	userID := auth.UserID(r.Context())
	recipe, err := h.recipeStore.Create(draftToRecipe(draft, &userID))
	if err != nil {
		h.logger.Error("save synthesized recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save recipe")
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

type expandResponse struct {
	RecipeName string `json:"recipe_name"`
	Added      int    `json:"added"`
	Skipped    int    `json:"skipped"`
}

// Expand adds a catalog recipe's ingredients to the active list, tagged
// with the recipe name. Ingredients already on the list are skipped.
func (h *RecipeHandler) Expand(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe ID")
		return
	}

	recipe, err := h.recipeStore.GetByID(id)
	if err != nil {
		h.logger.Error("expand recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to expand recipe")
		return
	}
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	listID := auth.ListID(r.Context())
	userID := auth.UserID(r.Context())

	existing, err := h.itemStore.ListByList(listID)
	if err != nil {
		h.logger.Error("expand recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to expand recipe")
		return
	}

	resp := expandResponse{RecipeName: recipe.Name}
	matcher := match.CaseInsensitive{}
	for _, ing := range recipe.Ingredients {
		if dup := match.FindDuplicate(existing, ing.SimpleName, matcher); dup != nil {
			resp.Skipped++
			continue
		}
		item, err := h.itemStore.Create(listID, ing.SimpleName, ing.EstimatedPrice, ing.DetailedName, recipe.Name, nil, "", &userID)
		if err != nil {
			h.logger.Error("expand recipe item", "name", ing.SimpleName, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to expand recipe")
			return
		}
		existing = append(existing, *item)
		resp.Added++
	}

	if resp.Added > 0 {
		h.hub.Broadcast(websocket.NewMessage("item", "imported", 0, listID, map[string]any{
			"added":       resp.Added,
			"recipe_name": recipe.Name,
		}))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createRecipeRequest struct {
	Name         string               `json:"name"`
	Instructions []string             `json:"instructions"`
	PrepTime     string               `json:"prep_time"`
	Difficulty   string               `json:"difficulty"`
	CostTier     string               `json:"cost_tier"`
	Tags         []string             `json:"tags"`
	Ingredients  []ai.IngredientDraft `json:"ingredients"`
}

// Create adds a curated recipe to the catalog. Admin only.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Ingredients) == 0 {
		writeError(w, http.StatusBadRequest, "at least one ingredient is required")
		return
	}

	userID := auth.UserID(r.Context())
	draft := &ai.RecipeDraft{
		Name:         req.Name,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		Difficulty:   req.Difficulty,
		CostTier:     req.CostTier,
		Tags:         req.Tags,
		Ingredients:  req.Ingredients,
	}

	recipe, err := h.recipeStore.Create(draftToRecipe(draft, &userID))
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

// Delete removes a catalog recipe. Admin only. Items already expanded
// from it keep their tag; only the catalog entry goes away.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe ID")
		return
	}

	if err := h.recipeStore.Delete(id); err != nil {
		h.logger.Error("delete recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type populateRequest struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// Populate bulk-generates catalog recipes around a theme. Admin only.
func (h *RecipeHandler) Populate(w http.ResponseWriter, r *http.Request) {
	if h.synthesizer == nil {
		writeError(w, http.StatusServiceUnavailable, "recipe synthesis is not configured")
		return
	}

	var req populateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Count <= 0 {
		req.Count = 5
	}
	if req.Count > 20 {
		writeError(w, http.StatusBadRequest, "count must be at most 20")
		return
	}

	drafts, err := h.synthesizer.GenerateCatalog(r.Context(), req.Theme, req.Count)
	if err != nil {
		h.writeAIError(w, "populate catalog", err)
		return
	}

	userID := auth.UserID(r.Context())
	created := make([]model.Recipe, 0, len(drafts))
	for i := range drafts {
		recipe, err := h.recipeStore.Create(draftToRecipe(&drafts[i], &userID))
		if err != nil {
			h.logger.Error("save generated recipe", "name", drafts[i].Name, "error", err)
			continue
		}
		created = append(created, *recipe)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"created": len(created),
		"recipes": created,
	})
}

func (h *RecipeHandler) writeAIError(w http.ResponseWriter, op string, err error) {
	var parseErr *ai.ParseError
	switch {
	case errors.Is(err, ai.ErrQuotaExhausted):
		h.logger.Warn(op, "error", err)
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error":   "quota_exhausted",
			"message": "limite de uso da IA atingido, tente novamente mais tarde",
		})
	case errors.As(err, &parseErr):
		h.logger.Error(op, "error", err)
		writeError(w, http.StatusBadGateway, "generative response could not be parsed")
	default:
		h.logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "generative request failed")
	}
}

func draftToRecipe(draft *ai.RecipeDraft, createdBy *int64) *model.Recipe {
	recipe := &model.Recipe{
		Name:         draft.Name,
		Instructions: draft.Instructions,
		PrepTime:     draft.PrepTime,
		Difficulty:   draft.Difficulty,
		CostTier:     draft.CostTier,
		Tags:         draft.Tags,
		CreatedBy:    createdBy,
	}
	for _, ing := range draft.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, model.RecipeIngredient{
			SimpleName:     ing.SimpleName,
			DetailedName:   ing.DetailedName,
			EstimatedPrice: ing.EstimatedPrice,
		})
	}
	return recipe
}
