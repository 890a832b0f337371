package domain

import "time"

type WeeklyBalance struct {
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	DaysLogged      int          `json:"days_logged"`
	AverageCalories int          `json:"average_calories"`
	Days            []DayBalance `json:"days"`
}

type DayBalance struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Logged   bool   `json:"logged"`
	Calories int    `json:"calories"`
	Goal     int    `json:"goal"`
}

type StatsInput struct {
	EndDate  time.Time
	Days     int
	Location *time.Location
}

// BuildBalance lays out one DayBalance per calendar day ending at
// input.EndDate, oldest first. Days without an archived log show zero
// calories against the default calorie goal.
func BuildBalance(history Archive, input StatsInput) *WeeklyBalance {
	loc := input.Location
	if loc == nil {
		loc = time.UTC
	}
	days := input.Days
	if days <= 0 {
		days = 7
	}

	end := input.EndDate.In(loc)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	start := end.AddDate(0, 0, -(days - 1))

	balance := &WeeklyBalance{
		StartDate: start.Format(DateLayout),
		EndDate:   end.Format(DateLayout),
		Days:      make([]DayBalance, 0, days),
	}

	total := 0
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		key := current.Format(DateLayout)
		day := DayBalance{
			Date:    key,
			Weekday: current.Format("Mon"),
			Goal:    DefaultGoals.Calories,
		}

		if logged, ok := history.FindByDate(key); ok {
			day.Logged = true
			day.Calories = logged.Consumed.Calories
			day.Goal = logged.Goals.Calories
			balance.DaysLogged++
			total += logged.Consumed.Calories
		}

		balance.Days = append(balance.Days, day)
	}

	if balance.DaysLogged > 0 {
		balance.AverageCalories = round(float64(total) / float64(balance.DaysLogged))
	}

	return balance
}
