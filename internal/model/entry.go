package model

import "time"

// Entry represents a single logged unit of work against a calendar day.
type Entry struct {
	ID        string    `json:"id"`
	DayKey    string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Link      *string   `json:"link,omitempty"`
	InTracker bool      `json:"in_tracker"`
}

// TotalHours returns the fractional duration used in every aggregation.
func (e Entry) TotalHours() float64 {
	return float64(e.Hours) + float64(e.Minutes)/60
}

// EntryPatch carries a partial update. Nil fields are left unchanged.
type EntryPatch struct {
	DayKey    *string
	Title     *string
	Hours     *int
	Minutes   *int
	Link      *string
	InTracker *bool
}

// Apply returns a copy of e with the non-nil patch fields applied.
// An empty Link clears the link.
func (p EntryPatch) Apply(e Entry) Entry {
	if p.DayKey != nil {
		e.DayKey = *p.DayKey
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Hours != nil {
		e.Hours = *p.Hours
	}
	if p.Minutes != nil {
		e.Minutes = *p.Minutes
	}
	if p.Link != nil {
		if *p.Link == "" {
			e.Link = nil
		} else {
			link := *p.Link
			e.Link = &link
		}
	}
	if p.InTracker != nil {
		e.InTracker = *p.InTracker
	}
	return e
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}
