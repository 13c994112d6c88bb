package grouping

import (
	"sort"

	"github.com/checklistia/checklistia/internal/model"
)

// Mode selects how items are bucketed. The three modes use disjoint label
// namespaces, so a label can never collide across mode switches.
type Mode string

const (
	ModeRecipe      Mode = "recipe"
	ModeAisle       Mode = "aisle"
	ModeResponsible Mode = "responsible"
)

// Fallback labels for items that carry no tag under the active mode.
const (
	LabelNoRecipe      = "Outros Itens"
	LabelNoAisle       = "❓ Outros"
	LabelNoResponsible = "Não Atribuído"
)

const (
	recipePrefix      = "Receita: "
	responsiblePrefix = "Responsável: "
)

// Group is a labeled bucket of items.
type Group struct {
	Label string               `json:"label"`
	Items []model.ShoppingItem `json:"items"`
}

// ValidMode reports whether s names a grouping mode.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeRecipe, ModeAisle, ModeResponsible:
		return true
	}
	return false
}

// GroupItems partitions items into labeled groups under the given mode.
// aisles maps item id to an aisle category and is only consulted in aisle
// mode. Groups are sorted lexicographically by label; within a group,
// purchased items sort last and the incoming order is otherwise preserved.
// Every item lands in exactly one group; empty input yields no groups.
func GroupItems(items []model.ShoppingItem, mode Mode, aisles map[int64]string) []Group {
	buckets := make(map[string][]model.ShoppingItem)
	for _, item := range items {
		label := labelFor(item, mode, aisles)
		buckets[label] = append(buckets[label], item)
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	groups := make([]Group, 0, len(labels))
	for _, label := range labels {
		groups = append(groups, Group{
			Label: label,
			Items: purchasedLast(buckets[label]),
		})
	}
	return groups
}

func labelFor(item model.ShoppingItem, mode Mode, aisles map[int64]string) string {
	switch mode {
	case ModeAisle:
		// The catch-all aisle category and "no assignment yet" share a
		// bucket so the UI shows a single leftover group.
		if cat := aisles[item.ID]; cat != "" && cat != "Outros" {
			return cat
		}
		return LabelNoAisle
	case ModeResponsible:
		if item.ResponsibleName != "" {
			return responsiblePrefix + item.ResponsibleName
		}
		return LabelNoResponsible
	default:
		if item.RecipeName != "" {
			return recipePrefix + item.RecipeName
		}
		return LabelNoRecipe
	}
}

// purchasedLast returns items reordered so purchased ones come after
// unpurchased ones, preserving relative order within each half.
func purchasedLast(items []model.ShoppingItem) []model.ShoppingItem {
	out := make([]model.ShoppingItem, 0, len(items))
	for _, item := range items {
		if !item.IsPurchased {
			out = append(out, item)
		}
	}
	for _, item := range items {
		if item.IsPurchased {
			out = append(out, item)
		}
	}
	return out
}
