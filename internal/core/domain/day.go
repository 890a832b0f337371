package domain

import "time"

const DateLayout = "2006-01-02"

// DailyGoals are the owner's macro targets. Replacing them is a full
// overwrite.
type DailyGoals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

var DefaultGoals = DailyGoals{
	Calories: 2000,
	Protein:  150,
	Carbs:    200,
	Fat:      60,
}

func (g DailyGoals) Validate() error {
	if g.Calories < 0 || g.Protein < 0 || g.Carbs < 0 || g.Fat < 0 {
		return ErrNegativeNutrient
	}
	return nil
}

// ActiveDay is the single editable, not yet archived daily log. Consumed is
// always derived from Meals.
type ActiveDay struct {
	Date     string     `json:"date"`
	Goals    DailyGoals `json:"goals"`
	Consumed Macros     `json:"consumed"`
	Meals    Ledger     `json:"meals"`
}

// DateOf returns the calendar-day key of t in loc.
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// NewActiveDay returns a fresh, empty day for today.
func NewActiveDay(today string, goals DailyGoals) *ActiveDay {
	return &ActiveDay{
		Date:  today,
		Goals: goals,
		Meals: Ledger{},
	}
}

// Reconcile brings day in line with the clock and the latest goals:
//   - a different date replaces the day wholesale (unsaved servings are dropped),
//   - different goals patch only Goals,
//   - otherwise day itself is returned, so repeated calls are idempotent.
//
// A nil day is treated as stale.
func Reconcile(day *ActiveDay, today string, goals DailyGoals) *ActiveDay {
	if day == nil || day.Date != today {
		return NewActiveDay(today, goals)
	}

	if day.Goals != goals {
		patched := *day
		patched.Goals = goals
		return &patched
	}

	return day
}

// WithLedger returns a copy of day holding ledger, with Consumed re-derived.
func (d *ActiveDay) WithLedger(ledger Ledger) *ActiveDay {
	if ledger == nil {
		ledger = Ledger{}
	}
	next := *d
	next.Meals = ledger
	next.Consumed = Consumed(ledger)
	return &next
}

// Remaining reports goal minus consumed per macro; values go negative when a
// goal is exceeded.
func (d *ActiveDay) Remaining() Macros {
	return Macros{
		Calories: d.Goals.Calories - d.Consumed.Calories,
		Protein:  d.Goals.Protein - d.Consumed.Protein,
		Carbs:    d.Goals.Carbs - d.Consumed.Carbs,
		Fat:      d.Goals.Fat - d.Consumed.Fat,
	}
}

// DaySummary is the read model of the active day.
type DaySummary struct {
	*ActiveDay
	Remaining Macros          `json:"remaining"`
	Groups    []CategoryGroup `json:"groups"`
}

func Summarize(day *ActiveDay) *DaySummary {
	return &DaySummary{
		ActiveDay: day,
		Remaining: day.Remaining(),
		Groups:    GroupByCategory(day.Meals),
	}
}
