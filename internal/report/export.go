package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

// WriteCSV writes entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []model.Entry) error {
	if _, err := fmt.Fprintln(w, "date,title,hours,minutes,link,in_tracker,id"); err != nil {
		return err
	}
	for _, e := range entries {
		link := ""
		if e.Link != nil {
			link = *e.Link
		}
		_, err := fmt.Fprintf(w, "%s,%s,%d,%d,%s,%t,%s\n",
			csvEscape(e.DayKey),
			csvEscape(e.Title),
			e.Hours,
			e.Minutes,
			csvEscape(link),
			e.InTracker,
			csvEscape(e.ID),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
