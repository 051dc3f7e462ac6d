package nutrition

import (
	"fmt"
	"math"
	"time"
)

// Period selects the report window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Days returns the window length for the period. Unknown values fall back
// to a week.
func (p Period) Days() int {
	if p == PeriodMonth {
		return 30
	}
	return 7
}

// Totals holds summed or averaged macro values.
type Totals struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
}

// DayTotals is the macro sum for one calendar day.
type DayTotals struct {
	Date string `json:"date"`
	Totals
}

// Report is the aggregated view over a date window. Daily covers every day
// in the window; days without logs carry zeros. Average is computed over
// days that have at least one log.
type Report struct {
	Period    Period      `json:"period"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Daily     []DayTotals `json:"daily"`
	Average   Totals      `json:"average"`
}

const dateLayout = "2006-01-02"

// BuildReport aggregates logs into a per-day series ending at end (inclusive)
// and spanning period.Days() days.
func BuildReport(logs []DietaryLog, period Period, end time.Time) Report {
	end = Day(end)
	start := end.AddDate(0, 0, -(period.Days() - 1))

	byDay := make(map[string]Totals)
	for _, log := range logs {
		key := Day(log.Date).Format(dateLayout)
		t := byDay[key]
		t.Calories += log.Calories
		t.Protein += log.Protein
		t.Fat += log.Fat
		t.Carbohydrate += log.Carbohydrate
		byDay[key] = t
	}

	daily := make([]DayTotals, 0, period.Days())
	var sum Totals
	loggedDays := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		t := byDay[key]
		daily = append(daily, DayTotals{Date: key, Totals: t})
		if t.Calories > 0 {
			loggedDays++
			sum.Calories += t.Calories
			sum.Protein += t.Protein
			sum.Fat += t.Fat
			sum.Carbohydrate += t.Carbohydrate
		}
	}

	var avg Totals
	if loggedDays > 0 {
		n := float64(loggedDays)
		avg = Totals{
			Calories:     round1(sum.Calories / n),
			Protein:      round1(sum.Protein / n),
			Fat:          round1(sum.Fat / n),
			Carbohydrate: round1(sum.Carbohydrate / n),
		}
	}

	return Report{
		Period:    period,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Daily:     daily,
		Average:   avg,
	}
}

// Advice is the result of comparing recent intake against the profile target.
type Advice struct {
	DaysLogged     int      `json:"days_logged"`
	AvgCalories    float64  `json:"avg_calories"`
	TargetCalories int      `json:"target_calories,omitempty"`
	HealthGoal     string   `json:"health_goal,omitempty"`
	Advice         []string `json:"advice"`
}

// calorieBand is the tolerance around the daily target within which intake
// counts as on track.
const calorieBand = 100

// BuildAdvice compares the average over the logged days in logs against the
// caller's daily target and health goal. Goal strings follow the profile
// enum (lose_weight, gain_muscle, maintain, improve_nutrition).
func BuildAdvice(logs []DietaryLog, targetCalories int, healthGoal string) Advice {
	days := make(map[string]struct{})
	var totalCal float64
	for _, log := range logs {
		days[Day(log.Date).Format(dateLayout)] = struct{}{}
		totalCal += log.Calories
	}
	daysLogged := len(days)

	var avgCal float64
	if daysLogged > 0 {
		avgCal = round1(totalCal / float64(daysLogged))
	}

	out := Advice{
		DaysLogged:     daysLogged,
		AvgCalories:    avgCal,
		TargetCalories: targetCalories,
		HealthGoal:     healthGoal,
	}

	if daysLogged == 0 {
		out.Advice = append(out.Advice, "No dietary logs yet. Start logging meals to track your nutrition intake.")
		return out
	}

	if targetCalories > 0 {
		diff := avgCal - float64(targetCalories)
		switch {
		case math.Abs(diff) <= calorieBand:
			out.Advice = append(out.Advice, fmt.Sprintf(
				"Your average daily intake this week is %.1f kcal, close to your target of %d kcal. Keep it up!",
				avgCal, targetCalories))
		case diff > calorieBand:
			out.Advice = append(out.Advice, fmt.Sprintf(
				"Your average daily intake this week is %.1f kcal, about %.0f kcal above your target of %d kcal. Consider lighter portions.",
				avgCal, diff, targetCalories))
		default:
			out.Advice = append(out.Advice, fmt.Sprintf(
				"Your average daily intake this week is %.1f kcal, about %.0f kcal below your target of %d kcal. Make sure you eat enough.",
				avgCal, -diff, targetCalories))
		}
	} else {
		out.Advice = append(out.Advice, fmt.Sprintf(
			"Your average daily intake this week is %.1f kcal. Set a daily calorie target on your profile for more precise advice.",
			avgCal))
	}

	switch healthGoal {
	case "lose_weight":
		out.Advice = append(out.Advice, "Weight loss tip: prefer low-calorie, high-fiber recipes and cut back on fried and sugary foods.")
	case "gain_muscle":
		out.Advice = append(out.Advice, "Muscle gain tip: keep protein intake high, around 1.5-2g per kilogram of body weight per day.")
	case "improve_nutrition":
		out.Advice = append(out.Advice, "Nutrition tip: vary your diet and make sure each day includes vegetables, protein and healthy fats.")
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
