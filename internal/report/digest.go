// Package report renders entry snapshots as shareable text, CSV and JSON.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/aggregate"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/earnings"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/i18n"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/timecalc"
)

// MonthDigest renders the month's entries as a plain-text block for sharing:
// a header with the month, earned amount and worked time, then one block per
// day. Each entry line is prefixed with "+" when it is in the tracker, "-" otherwise.
func MonthDigest(entries []model.Entry, month time.Time, summary earnings.Summary, settings model.Settings) string {
	lang := settings.Language
	monthEntries := aggregate.EntriesInMonth(entries, month.Year(), month.Month())

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", i18n.MonthLabel(lang, month))
	fmt.Fprintf(&b, "%s: %d%s, %s: %s\n\n",
		i18n.T(lang, i18n.Earned),
		summary.AmountEarned,
		i18n.CurrencySymbol(settings.Currency),
		strings.ToLower(i18n.T(lang, i18n.Worked)),
		timecalc.FormatHoursAndMinutes(summary.HoursWorked, i18n.T(lang, i18n.Hours), i18n.T(lang, i18n.Minutes)),
	)

	for _, g := range aggregate.GroupByDay(monthEntries) {
		fmt.Fprintf(&b, "%s\n", i18n.ShortDayLabel(lang, timecalc.ParseDayKey(g.DayKey)))
		writeEntryLines(&b, g.Entries, lang)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// DayDigest renders one day's entries under the day's long label. It returns
// "" when there is nothing to share.
func DayDigest(entries []model.Entry, dayKey string, lang model.Language) string {
	dayEntries := aggregate.EntriesByDay(entries, dayKey)
	if len(dayEntries) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", i18n.LongDayLabel(lang, timecalc.ParseDayKey(dayKey)))
	writeEntryLines(&b, dayEntries, lang)
	return strings.TrimSpace(b.String())
}

func writeEntryLines(b *strings.Builder, entries []model.Entry, lang model.Language) {
	for _, e := range entries {
		fmt.Fprintf(b, "%s %s %s\n", TrackerPrefix(e), EntryDuration(e, lang), e.Title)
	}
}

// TrackerPrefix returns "+" for entries already in the tracker, "-" otherwise.
func TrackerPrefix(e model.Entry) string {
	if e.InTracker {
		return "+"
	}
	return "-"
}

// EntryDuration formats an entry's own hours and minutes in lang.
func EntryDuration(e model.Entry, lang model.Language) string {
	return timecalc.FormatEntryDuration(e.Hours, e.Minutes, i18n.T(lang, i18n.Hours), i18n.T(lang, i18n.Minutes))
}
