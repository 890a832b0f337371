package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TrackedServing is one weighed, logged instance of a meal. MealID is nil for
// quick-add entries that are not backed by a library profile.
type TrackedServing struct {
	ID     string  `json:"id"`
	MealID *string `json:"meal_id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Macros
	Eaten    bool     `json:"eaten"`
	Category Category `json:"category"`
	ImageURL string   `json:"image_url"`
}

func newServing(meal MealProfile, weight float64) TrackedServing {
	mealID := meal.ID
	return TrackedServing{
		ID:       uuid.NewString(),
		MealID:   &mealID,
		Name:     meal.Name,
		Weight:   weight,
		Macros:   Scale(meal.Per100g, weight),
		Eaten:    true,
		Category: meal.Category,
		ImageURL: meal.ImageURL,
	}
}

// Ledger is the ordered list of servings logged for a day. Every operation
// returns a fresh ledger and never writes through to the receiver's backing
// array.
type Ledger []TrackedServing

func (l Ledger) clone(extra int) Ledger {
	out := make(Ledger, len(l), len(l)+extra)
	copy(out, l)
	return out
}

func (l Ledger) index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

func (l Ledger) Find(id string) (TrackedServing, bool) {
	if i := l.index(id); i >= 0 {
		return l[i], true
	}
	return TrackedServing{}, false
}

// Track appends a serving of meal at weight grams, marked as eaten.
func (l Ledger) Track(meal MealProfile, weight float64) (Ledger, TrackedServing) {
	serving := newServing(meal, weight)
	return append(l.clone(1), serving), serving
}

type QuickAddInput struct {
	Name     string
	Weight   float64
	Calories int
	Protein  int
	Carbs    int
	Fat      int
}

// QuickAddName labels quick-add servings entered without a name.
const QuickAddName = "Quick Add"

// QuickAdd appends an ad-hoc serving whose macros are already serving totals.
func (l Ledger) QuickAdd(in QuickAddInput) (Ledger, TrackedServing) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = QuickAddName
	}

	serving := TrackedServing{
		ID:     uuid.NewString(),
		MealID: nil,
		Name:   name,
		Weight: in.Weight,
		Macros: Macros{
			Calories: in.Calories,
			Protein:  in.Protein,
			Carbs:    in.Carbs,
			Fat:      in.Fat,
		},
		Eaten:    true,
		Category: CategorySnacks,
	}
	return append(l.clone(1), serving), serving
}

// Remove deletes the serving with id. Unknown ids are a no-op.
func (l Ledger) Remove(id string) Ledger {
	out := make(Ledger, 0, len(l))
	for _, s := range l {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// ToggleEaten flips the eaten flag. Unknown ids are a no-op.
func (l Ledger) ToggleEaten(id string) Ledger {
	out := l.clone(0)
	if i := out.index(id); i >= 0 {
		out[i].Eaten = !out[i].Eaten
	}
	return out
}

// Reweigh changes a serving's weight and re-derives its macros: from the
// library profile when MealID resolves, otherwise proportionally from the
// previous weight. Unknown ids, negative weights and zero previous weights on
// unresolved servings leave the ledger unchanged.
func (l Ledger) Reweigh(id string, newWeight float64, library MealLibrary) Ledger {
	out := l.clone(0)
	i := out.index(id)
	if i < 0 || newWeight < 0 {
		return out
	}

	s := out[i]
	if s.MealID != nil {
		if meal, ok := library.Find(*s.MealID); ok {
			s.Weight = newWeight
			s.Macros = Scale(meal.Per100g, newWeight)
			out[i] = s
			return out
		}
	}

	scaled, ok := Rescale(s.Macros, s.Weight, newWeight)
	if !ok {
		return out
	}
	s.Weight = newWeight
	s.Macros = scaled
	out[i] = s
	return out
}

// TrackAll tracks every meal at its default weight, in order.
func (l Ledger) TrackAll(meals []MealProfile) Ledger {
	out := l.clone(len(meals))
	for _, m := range meals {
		out = append(out, newServing(m, m.DefaultWeight))
	}
	return out
}

// Consumed sums the macros of eaten servings. Servings not marked eaten stay
// in the ledger but contribute nothing.
func Consumed(l Ledger) Macros {
	var total Macros
	for _, s := range l {
		if s.Eaten {
			total = total.Add(s.Macros)
		}
	}
	return total
}
