package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNothingToSave   = errors.New("log is empty, nothing to save")
	ErrArchiveNotFound = errors.New("archived day not found")
	ErrInvalidSaveDate = errors.New("save date is required")
)

const displayDateLayout = "January 2"

// ArchivedDay is a frozen copy of an active day filed under a calendar date.
// ISODate is the YYYY-MM-DD key used for matching and ordering.
type ArchivedDay struct {
	ID          string     `json:"id"`
	DisplayDate string     `json:"date"`
	ISODate     string     `json:"iso_date"`
	Consumed    Macros     `json:"consumed"`
	Goals       DailyGoals `json:"goals"`
	Meals       Ledger     `json:"meals"`
}

// Archive is the history of finished days, newest first.
type Archive []ArchivedDay

type SaveResult struct {
	Entry   ArchivedDay
	Updated bool
}

func (a Archive) Find(id string) (ArchivedDay, bool) {
	for _, d := range a {
		if d.ID == id {
			return d, true
		}
	}
	return ArchivedDay{}, false
}

// FindByDate returns the entry filed under the calendar day key (YYYY-MM-DD).
// Matching is by prefix so entries carrying a full timestamp still match.
func (a Archive) FindByDate(key string) (ArchivedDay, bool) {
	if i := a.indexByDate(key); i >= 0 {
		return a[i], true
	}
	return ArchivedDay{}, false
}

func (a Archive) indexByDate(key string) int {
	for i := range a {
		if strings.HasPrefix(a[i].ISODate, key) {
			return i
		}
	}
	return -1
}

// SaveDay files day under the calendar date of chosen (evaluated in loc). An
// existing entry for that date is overwritten in place and keeps its id;
// otherwise a new entry is added. The result is sorted newest first. An empty
// ledger yields ErrNothingToSave and leaves the archive untouched.
func (a Archive) SaveDay(day *ActiveDay, chosen time.Time, loc *time.Location) (Archive, SaveResult, error) {
	if day == nil || len(day.Meals) == 0 {
		return a, SaveResult{}, ErrNothingToSave
	}
	if chosen.IsZero() {
		return a, SaveResult{}, ErrInvalidSaveDate
	}
	if loc == nil {
		loc = time.UTC
	}

	local := chosen.In(loc)
	key := local.Format(DateLayout)

	meals := make(Ledger, len(day.Meals))
	copy(meals, day.Meals)

	out := make(Archive, len(a), len(a)+1)
	copy(out, a)

	var result SaveResult
	if i := out.indexByDate(key); i >= 0 {
		entry := out[i]
		entry.DisplayDate = local.Format(displayDateLayout)
		entry.ISODate = key
		entry.Consumed = day.Consumed
		entry.Goals = day.Goals
		entry.Meals = meals
		out[i] = entry
		result = SaveResult{Entry: entry, Updated: true}
	} else {
		entry := ArchivedDay{
			ID:          uuid.NewString(),
			DisplayDate: local.Format(displayDateLayout),
			ISODate:     key,
			Consumed:    day.Consumed,
			Goals:       day.Goals,
			Meals:       meals,
		}
		out = append(out, entry)
		result = SaveResult{Entry: entry}
	}

	out.sortNewestFirst()
	return out, result, nil
}

// Delete removes the entry with id. Unknown ids are a no-op.
func (a Archive) Delete(id string) Archive {
	out := make(Archive, 0, len(a))
	for _, d := range a {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// Sorted returns a copy ordered newest first.
func (a Archive) Sorted() Archive {
	out := make(Archive, len(a))
	copy(out, a)
	out.sortNewestFirst()
	return out
}

func (a Archive) sortNewestFirst() {
	sort.SliceStable(a, func(i, j int) bool {
		return a[i].ISODate > a[j].ISODate
	})
}
