// Package aggregate derives per-day and per-month lookups from an entry snapshot.
// All functions are pure; the input slice is never modified.
package aggregate

import (
	"sort"
	"time"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

// DayGroup is the set of entries logged against one day key.
type DayGroup struct {
	DayKey  string
	Entries []model.Entry
}

// EntriesByDay returns the entries whose day key equals dayKey, in input order.
func EntriesByDay(entries []model.Entry, dayKey string) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if e.DayKey == dayKey {
			out = append(out, e)
		}
	}
	return out
}

// TotalHoursByDay sums the fractional hours logged against dayKey.
func TotalHoursByDay(entries []model.Entry, dayKey string) float64 {
	var sum float64
	for _, e := range entries {
		if e.DayKey == dayKey {
			sum += e.TotalHours()
		}
	}
	return sum
}

// TotalHours sums the fractional hours of all entries.
func TotalHours(entries []model.Entry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.TotalHours()
	}
	return sum
}

// EntriesInMonth returns the entries whose parsed day falls in year/month.
func EntriesInMonth(entries []model.Entry, year int, month time.Month) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		d := timecalc.ParseDayKey(e.DayKey)
		if d.Year() == year && d.Month() == month {
			out = append(out, e)
		}
	}
	return out
}

// HoursByDay builds the day key -> total hours lookup used by the calendar grid.
func HoursByDay(entries []model.Entry) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		totals[e.DayKey] += e.TotalHours()
	}
	return totals
}

// GroupByDay groups entries by day key. Groups are sorted by day key;
// entries keep their input order within a group.
func GroupByDay(entries []model.Entry) []DayGroup {
	index := map[string]int{}
	var groups []DayGroup
	for _, e := range entries {
		i, ok := index[e.DayKey]
		if !ok {
			i = len(groups)
			index[e.DayKey] = i
			groups = append(groups, DayGroup{DayKey: e.DayKey})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].DayKey < groups[b].DayKey
	})
	return groups
}
