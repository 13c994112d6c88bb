package ai

import (
	"errors"
	"testing"
)

const validRecipeJSON = `{
	"name": "Bolo de Cenoura",
	"ingredients": [
		{"simple_name": "Cenoura", "detailed_name": "3 cenouras médias", "estimated_price": "4.50"},
		{"simple_name": "Farinha", "detailed_name": "2 xícaras de farinha de trigo", "estimated_price": "6.00"}
	],
	"instructions": ["Bata as cenouras no liquidificador", "Misture e asse por 40 minutos"],
	"prep_time": "50 minutos",
	"difficulty": "fácil",
	"cost_tier": "barato",
	"tags": ["doce", "lanche"]
}`

func TestParseRecipe(t *testing.T) {
	draft, err := parseRecipe([]byte(validRecipeJSON))
	if err != nil {
		t.Fatalf("parseRecipe: %v", err)
	}
	if draft.Name != "Bolo de Cenoura" {
		t.Errorf("name = %q", draft.Name)
	}
	if len(draft.Ingredients) != 2 {
		t.Fatalf("ingredients = %d, want 2", len(draft.Ingredients))
	}
	if got := draft.Ingredients[0].EstimatedPrice.String(); got != "4.5" {
		t.Errorf("estimated price = %s, want 4.5", got)
	}
	if len(draft.Instructions) != 2 {
		t.Errorf("instructions = %d, want 2", len(draft.Instructions))
	}
}

func TestParseRecipeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{"name": `},
		{"missing name", `{"ingredients": [{"simple_name": "Ovo"}], "instructions": ["misture"]}`},
		{"no ingredients", `{"name": "X", "ingredients": [], "instructions": ["misture"]}`},
		{"ingredient without simple_name", `{"name": "X", "ingredients": [{"detailed_name": "algo"}], "instructions": ["misture"]}`},
		{"no instructions", `{"name": "X", "ingredients": [{"simple_name": "Ovo"}], "instructions": []}`},
	}

	for _, tt := range tests {
		_, err := parseRecipe([]byte(tt.json))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("%s: error = %v, want ParseError", tt.name, err)
		}
	}
}

func TestParseRecipeList(t *testing.T) {
	drafts, err := parseRecipeList([]byte("[" + validRecipeJSON + "," + validRecipeJSON + "]"))
	if err != nil {
		t.Fatalf("parseRecipeList: %v", err)
	}
	if len(drafts) != 2 {
		t.Errorf("drafts = %d, want 2", len(drafts))
	}
}

func TestParseRecipeListRejectsEmpty(t *testing.T) {
	if _, err := parseRecipeList([]byte(`[]`)); err == nil {
		t.Error("expected error for empty array")
	}
}

func TestParseRecipeListFailsClosed(t *testing.T) {
	// One valid entry plus one invalid entry rejects the whole batch.
	bad := `[` + validRecipeJSON + `, {"name": "Sem Nada"}]`
	if _, err := parseRecipeList([]byte(bad)); err == nil {
		t.Error("expected error when any entry is invalid")
	}
}

func TestParseCategories(t *testing.T) {
	data := `[
		{"item_name": "Leite", "category": "Laticínios"},
		{"item_name": "Sabão", "category": "Limpeza"}
	]`
	got, err := parseCategories([]byte(data))
	if err != nil {
		t.Fatalf("parseCategories: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("assignments = %d, want 2", len(got))
	}
	if got[0].ItemName != "Leite" || got[0].Category != "Laticínios" {
		t.Errorf("assignments[0] = %+v", got[0])
	}
}

func TestParseCategoriesRejectsMissingName(t *testing.T) {
	if _, err := parseCategories([]byte(`[{"category": "Limpeza"}]`)); err == nil {
		t.Error("expected error for missing item_name")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n[1, 2]\n```", `[1, 2]`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.input); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
