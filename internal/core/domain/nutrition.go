package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Macros holds absolute nutrition values for a serving or a day, rounded to
// whole units (kcal for calories, grams for the rest).
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Add returns the field-wise sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

func (m Macros) IsZero() bool {
	return m == Macros{}
}

// NutrientDensity is a per-100g macro profile.
type NutrientDensity struct {
	Calories float64 `json:"calories_per_100g"`
	Protein  float64 `json:"protein_per_100g"`
	Carbs    float64 `json:"carbs_per_100g"`
	Fat      float64 `json:"fat_per_100g"`
}

func (d NutrientDensity) validate() error {
	if d.Calories < 0 || d.Protein < 0 || d.Carbs < 0 || d.Fat < 0 {
		return ErrNegativeNutrient
	}
	return nil
}

// round matches the half-up rounding used for every derived value.
func round(v float64) int {
	return int(math.Round(v))
}

// Scale converts a per-100g profile into the macros of a serving of
// weightGrams. Non-positive weights are not rejected here.
func Scale(per100g NutrientDensity, weightGrams float64) Macros {
	return Macros{
		Calories: round(per100g.Calories * weightGrams / 100),
		Protein:  round(per100g.Protein * weightGrams / 100),
		Carbs:    round(per100g.Carbs * weightGrams / 100),
		Fat:      round(per100g.Fat * weightGrams / 100),
	}
}

// DensityFromServing inverts Scale: it derives a per-100g profile from the
// absolute values of one serving. A serving weight <= 0 is treated as 1g.
func DensityFromServing(calories, protein, carbs, fat, weightGrams float64) NutrientDensity {
	safeWeight := weightGrams
	if safeWeight <= 0 {
		safeWeight = 1
	}

	per := func(v float64) float64 {
		return float64(round(v / safeWeight * 100))
	}

	return NutrientDensity{
		Calories: per(calories),
		Protein:  per(protein),
		Carbs:    per(carbs),
		Fat:      per(fat),
	}
}

// Rescale proportionally re-weighs absolute values when no per-100g profile
// is available. It reports false, leaving m untouched, when oldWeight is 0.
func Rescale(m Macros, oldWeight, newWeight float64) (Macros, bool) {
	if oldWeight == 0 {
		return m, false
	}

	ratio := newWeight / oldWeight
	return Macros{
		Calories: round(float64(m.Calories) * ratio),
		Protein:  round(float64(m.Protein) * ratio),
		Carbs:    round(float64(m.Carbs) * ratio),
		Fat:      round(float64(m.Fat) * ratio),
	}, true
}

// ParseAmount reads a user-entered number. Anything that does not parse is
// treated as zero so forms stay submittable.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Amount is a lenient JSON number: it accepts numbers and numeric strings,
// and decodes anything else as 0.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(ParseAmount(s))
		return nil
	}

	*a = 0
	return nil
}

func (a Amount) Float() float64 {
	return float64(a)
}

func (a Amount) Int() int {
	return round(float64(a))
}
