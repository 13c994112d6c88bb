// Package ai wraps the Gemini API for recipe synthesis, aisle
// categorization, and bulk catalog population. Every call goes through a
// bounded retry loop that only retries rate-limit errors.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"

	"github.com/checklistia/checklistia/internal/aisle"
)

const defaultModel = "gemini-2.0-flash"

// Config holds the generative API configuration.
type Config struct {
	APIKey string
	Model  string
}

// Client is the shared generative-AI client.
type Client struct {
	genai   *genai.Client
	model   string
	backoff func() retry.Backoff
	logger  *slog.Logger
}

// NewClient creates a Client using the production quota backoff.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generative API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		genai:   gc,
		model:   cfg.Model,
		backoff: QuotaBackoff,
		logger:  logger,
	}, nil
}

// CategorizeItems buckets item names into the aisle taxonomy. Items the
// model does not place in a known category come back as "Outros".
func (c *Client) CategorizeItems(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	prompt := fmt.Sprintf(`Classifique cada item de supermercado em exatamente uma destas categorias: %s.
Responda somente com um array JSON de objetos {"item_name": "...", "category": "..."}.
Itens:
- %s`, strings.Join(aisle.Taxonomy, ", "), strings.Join(names, "\n- "))

	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	assignments, err := parseCategories(raw)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(names))
	for _, a := range assignments {
		if aisle.Valid(a.Category) {
			byName[a.ItemName] = a.Category
		} else {
			byName[a.ItemName] = aisle.Outros
		}
	}
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			byName[name] = aisle.Outros
		}
	}
	return byName, nil
}

// SynthesizeRecipe produces a full recipe draft from a recipe name.
func (c *Client) SynthesizeRecipe(ctx context.Context, name string) (*RecipeDraft, error) {
	prompt := fmt.Sprintf(`Crie uma receita completa para "%s".
Responda somente com um objeto JSON com os campos:
"name", "ingredients" (array de {"simple_name", "detailed_name", "estimated_price"}),
"instructions" (array de strings), "prep_time", "difficulty" (Fácil/Médio/Difícil),
"cost_tier" (Econômico/Moderado/Caro), "tags" (array de strings).
"simple_name" é o nome do produto como aparece numa lista de compras;
"estimated_price" é o preço estimado em reais como número.`, name)

	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseRecipe(raw)
}

// GenerateCatalog produces several recipe drafts in one call (admin bulk
// population).
func (c *Client) GenerateCatalog(ctx context.Context, theme string, count int) ([]RecipeDraft, error) {
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf(`Crie %d receitas sobre o tema "%s".
Responda somente com um array JSON de objetos, cada um com os campos:
"name", "ingredients" (array de {"simple_name", "detailed_name", "estimated_price"}),
"instructions" (array de strings), "prep_time", "difficulty", "cost_tier", "tags".`, count, theme)

	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseRecipeList(raw)
}

// generateJSON runs one retry-wrapped generation call and returns the raw
// JSON text of the response.
func (c *Client) generateJSON(ctx context.Context, prompt string) ([]byte, error) {
	var text string
	err := do(ctx, c.backoff(), func(ctx context.Context) error {
		resp, err := c.genai.Models.GenerateContent(ctx, c.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
			},
		)
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}
		text = resp.Text()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []byte(stripCodeFence(text)), nil
}

// stripCodeFence removes a markdown ```json fence the model sometimes
// wraps around the payload despite the JSON MIME type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
