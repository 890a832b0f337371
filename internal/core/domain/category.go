package domain

import "strings"

type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategorySnacks    Category = "Snacks"
)

// CategoryOrder is the fixed display order of meal categories.
var CategoryOrder = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategorySnacks,
}

func (c Category) Valid() bool {
	for _, known := range CategoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory coerces free text into a known category, case-insensitively.
// Unrecognized values fall back to Snacks.
func ParseCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	for _, known := range CategoryOrder {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return CategorySnacks
}

type CategoryGroup struct {
	Category Category         `json:"category"`
	Calories int              `json:"calories"`
	Servings []TrackedServing `json:"servings"`
}

// GroupByCategory partitions a ledger in one pass and returns the non-empty
// groups in CategoryOrder. The calorie subtotal counts every serving in the
// group, eaten or not.
func GroupByCategory(ledger Ledger) []CategoryGroup {
	buckets := make(map[Category][]TrackedServing, len(CategoryOrder))
	for _, s := range ledger {
		cat := s.Category
		if !cat.Valid() {
			cat = CategorySnacks
		}
		buckets[cat] = append(buckets[cat], s)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for _, cat := range CategoryOrder {
		servings := buckets[cat]
		if len(servings) == 0 {
			continue
		}

		total := 0
		for _, s := range servings {
			total += s.Calories
		}

		groups = append(groups, CategoryGroup{
			Category: cat,
			Calories: total,
			Servings: servings,
		})
	}

	return groups
}
