package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
	"github.com/Tiliavir/trivial-earnings-tracker/internal/storage"
)

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestEntryDuration(t *testing.T) {
	tests := []struct {
		hours, minutes int
		wantH, wantM   int
		wantErr        bool
	}{
		{2, 30, 2, 30, false},
		{0, 90, 1, 30, false},
		{1, 120, 3, 0, false},
		{0, 0, 0, 0, false},
		{24, 0, 24, 0, false},
		{23, 60, 24, 0, false},
		{24, 1, 0, 0, true},
		{25, 0, 0, 0, true},
		{-1, 0, 0, 0, true},
		{0, -5, 0, 0, true},
	}
	for _, tt := range tests {
		h, m, err := entryDuration(tt.hours, tt.minutes)
		if (err != nil) != tt.wantErr {
			t.Errorf("entryDuration(%d, %d) err = %v, wantErr %v", tt.hours, tt.minutes, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (h != tt.wantH || m != tt.wantM) {
			t.Errorf("entryDuration(%d, %d) = %d, %d; want %d, %d", tt.hours, tt.minutes, h, m, tt.wantH, tt.wantM)
		}
	}
}

func TestEntryTitle(t *testing.T) {
	if got, err := entryTitle("  Code review \n"); err != nil || got != "Code review" {
		t.Errorf("entryTitle = %q, %v", got, err)
	}
	if _, err := entryTitle("   "); err == nil {
		t.Error("expected error for blank title")
	}
}

func TestResolveDayAndMonth(t *testing.T) {
	fixNow(t, time.Date(2024, 3, 5, 18, 0, 0, 0, time.Local))

	if got, err := resolveDay(""); err != nil || got != "2024-03-05" {
		t.Errorf("resolveDay(\"\") = %q, %v", got, err)
	}
	if got, err := resolveDay("2023-12-31"); err != nil || got != "2023-12-31" {
		t.Errorf("resolveDay = %q, %v", got, err)
	}
	if _, err := resolveDay("31.12.2023"); err == nil {
		t.Error("expected error for malformed date")
	}

	m, err := resolveMonth("")
	if err != nil || m.Year() != 2024 || m.Month() != time.March || m.Day() != 1 {
		t.Errorf("resolveMonth(\"\") = %v, %v", m, err)
	}
	if _, err := resolveMonth("2024-13"); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestResolveDaySkippedMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatal(err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })

	// Clocks jump from 00:00 to 01:00 on this day.
	if got, err := resolveDay("2024-09-08"); err != nil || got != "2024-09-08" {
		t.Errorf("resolveDay(2024-09-08) = %q, %v", got, err)
	}
	m, err := resolveMonth("2024-09")
	if err != nil || m.Month() != time.September || m.Day() != 1 {
		t.Errorf("resolveMonth(2024-09) = %v, %v", m, err)
	}
}

func TestFindEntry(t *testing.T) {
	entries := []model.Entry{
		{ID: "abc123"},
		{ID: "abd456"},
		{ID: "ab"},
	}
	tests := []struct {
		id      string
		want    string
		wantErr error
	}{
		{"abc123", "abc123", nil},
		{"abc", "abc123", nil},
		{"ab", "ab", nil},
		{"a", "", errAmbiguousID},
		{"zzz", "", storage.ErrNotFound},
		{" ", "", storage.ErrNotFound},
	}
	for _, tt := range tests {
		got, err := findEntry(entries, tt.id)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("findEntry(%q) err = %v, want %v", tt.id, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got.ID != tt.want {
			t.Errorf("findEntry(%q) = %q, %v; want %q", tt.id, got.ID, err, tt.want)
		}
	}
}

func editFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	fs.StringVar(&editDate, "date", "", "")
	fs.StringVar(&editTitle, "title", "", "")
	fs.IntVar(&editHours, "hours", 0, "")
	fs.IntVar(&editMinutes, "minutes", 0, "")
	fs.StringVar(&editLink, "link", "", "")
	fs.BoolVar(&editInTracker, "in-tracker", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestBuildPatch(t *testing.T) {
	patch, err := buildPatch(editFlags(t, "--hours", "1", "--minutes", "75", "--link", "", "--in-tracker"))
	if err != nil {
		t.Fatalf("buildPatch: %v", err)
	}
	if patch.Hours == nil || *patch.Hours != 2 || patch.Minutes == nil || *patch.Minutes != 15 {
		t.Errorf("duration patch = %v, %v", patch.Hours, patch.Minutes)
	}
	if patch.Link == nil || *patch.Link != "" {
		t.Errorf("link patch = %v, want pointer to empty string", patch.Link)
	}
	if patch.InTracker == nil || !*patch.InTracker {
		t.Errorf("in-tracker patch = %v", patch.InTracker)
	}
	if patch.Title != nil || patch.DayKey != nil {
		t.Errorf("unexpected fields set: %+v", patch)
	}

	patch, err = buildPatch(editFlags(t, "--date", "2024-03-07", "--title", " Renamed "))
	if err != nil {
		t.Fatal(err)
	}
	if *patch.DayKey != "2024-03-07" || *patch.Title != "Renamed" || patch.Hours != nil {
		t.Errorf("patch = %+v", patch)
	}

	for _, args := range [][]string{
		{},
		{"--minutes", "75"},
		{"--title", "  "},
		{"--date", ""},
		{"--date", "tomorrow"},
		{"--hours", "30"},
	} {
		if _, err := buildPatch(editFlags(t, args...)); err == nil {
			t.Errorf("buildPatch(%v) expected error", args)
		}
	}
}

func TestCheckPatchedDuration(t *testing.T) {
	entry := model.Entry{ID: "a", DayKey: "2024-03-05", Title: "API design", Hours: 3, Minutes: 30}
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"hours 24 keeps stored minutes", []string{"--hours", "24"}, true},
		{"hours 24 with zero minutes", []string{"--hours", "24", "--minutes", "0"}, false},
		{"hours 23", []string{"--hours", "23"}, false},
		{"minutes only", []string{"--minutes", "1"}, false},
		{"title only", []string{"--title", "Renamed"}, false},
	}
	for _, tt := range tests {
		patch, err := buildPatch(editFlags(t, tt.args...))
		if err != nil {
			t.Fatalf("%s: buildPatch: %v", tt.name, err)
		}
		err = checkPatchedDuration(entry, patch)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: checkPatchedDuration err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}

	full := model.Entry{ID: "b", DayKey: "2024-03-05", Title: "Marathon", Hours: 24}
	patch, err := buildPatch(editFlags(t, "--minutes", "30"))
	if err != nil {
		t.Fatal(err)
	}
	if err := checkPatchedDuration(full, patch); err == nil {
		t.Error("adding minutes to a 24 hour entry should be rejected")
	}
}

func TestApplySetting(t *testing.T) {
	s := model.DefaultSettings()
	steps := []struct {
		key, value string
	}{
		{"hourly_rate", "1500,5"},
		{"hours_per_day", "6"},
		{"desired_monthly_income", ""},
		{"calculation_mode", "INCOME"},
		{"include_weekends", "true"},
		{"START_FROM_SUNDAY", "1"},
		{"language", "En"},
		{"currency", "usd"},
	}
	for _, st := range steps {
		var err error
		if s, err = applySetting(s, st.key, st.value); err != nil {
			t.Fatalf("applySetting(%s, %s): %v", st.key, st.value, err)
		}
	}
	want := model.Settings{
		HourlyRate:      "1500,5",
		HoursPerDay:     "6",
		CalculationMode: model.ModeIncome,
		IncludeWeekends: true,
		StartFromSunday: true,
		Language:        model.LangEN,
		Currency:        model.CurrencyUSD,
	}
	if s != want {
		t.Errorf("settings = %+v, want %+v", s, want)
	}

	bad := [][2]string{
		{"hourly_rate", "lots"},
		{"hourly_rate", "-5"},
		{"calculation_mode", "days"},
		{"include_weekends", "maybe"},
		{"language", "de"},
		{"currency", "GBP"},
		{"theme", "dark"},
	}
	for _, kv := range bad {
		if _, err := applySetting(s, kv[0], kv[1]); err == nil {
			t.Errorf("applySetting(%s, %s) expected error", kv[0], kv[1])
		}
	}
}

func TestPrintSettings(t *testing.T) {
	var buf bytes.Buffer
	printSettings(&buf, model.DefaultSettings())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("printSettings lines = %d, want 8", len(lines))
	}
	if !strings.HasPrefix(lines[0], "calculation_mode") || !strings.HasSuffix(lines[0], "hours") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestBuildMonthReport(t *testing.T) {
	today := time.Date(2024, 3, 25, 12, 0, 0, 0, time.Local)
	s := enSettings()
	r := buildMonthReport(exportFixture(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), today, s)

	if r.Month != "2024-03" {
		t.Errorf("Month = %q", r.Month)
	}
	if r.Summary.AmountEarned != 43 {
		t.Errorf("AmountEarned = %d, want 43", r.Summary.AmountEarned)
	}
	if r.Summary.TotalHoursNeeded == nil || *r.Summary.TotalHoursNeeded != 168 {
		t.Errorf("TotalHoursNeeded = %v, want 168", r.Summary.TotalHoursNeeded)
	}
	// Mon 25 .. Sun 31 March 2024: five working days left.
	if r.Projection.RemainingWorkingDays != 5 {
		t.Errorf("RemainingWorkingDays = %d, want 5", r.Projection.RemainingWorkingDays)
	}

	var buf bytes.Buffer
	printSummary(&buf, r)
	out := buf.String()
	for _, want := range []string{"March 2024", "Earned", "$43", "Progress", "Projected"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("tet %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestCommandsEndToEnd(t *testing.T) {
	for _, backend := range []string{"files", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			t.Setenv("TET_DATA_DIR", t.TempDir())
			t.Setenv("TET_STORAGE_BACKEND", backend)
			fixNow(t, time.Date(2024, 3, 5, 18, 0, 0, 0, time.Local))

			run(t, "settings", "set", "hourly_rate", "10")
			run(t, "settings", "set", "language", "en")
			run(t, "settings", "set", "currency", "USD")

			out := run(t, "add", "API", "design", "--date", "2024-03-05", "--hours", "2", "--minutes", "30", "--link", "", "--in-tracker=true")
			if !strings.HasPrefix(out, "Added 2024-03-05 2 hours 30 minutes API design [") {
				t.Errorf("add output = %q", out)
			}
			run(t, "add", "Bugfix", "--date", "", "--hours", "0", "--minutes", "105", "--link", "https://tracker.example/B-1", "--in-tracker=false")

			out = run(t, "export", "--month", "2024-03", "--date", "", "--format", "text")
			want := "March 2024\nEarned: 43$, worked: 4 hours 15 minutes\n\nMar 5\n+ 2 hours 30 minutes API design\n- 1 hours 45 minutes Bugfix\n"
			if out != want {
				t.Errorf("export text:\ngot  %q\nwant %q", out, want)
			}

			var entries []model.Entry
			if err := json.Unmarshal([]byte(run(t, "export", "--month", "2024-03", "--date", "", "--format", "json")), &entries); err != nil {
				t.Fatalf("export json: %v", err)
			}
			if len(entries) != 2 || entries[1].Title != "Bugfix" {
				t.Fatalf("exported entries = %+v", entries)
			}
			bugfix := entries[1].ID

			out = run(t, "toggle", bugfix[:8])
			if out != "+ Bugfix ["+bugfix[:8]+"]\n" {
				t.Errorf("toggle output = %q", out)
			}

			out = run(t, "list", "--date", "2024-03-05", "--month", "")
			if !strings.Contains(out, "2024-03-05  Tuesday, Mar 5  (4 hours 15 minutes • 43$)") ||
				!strings.Contains(out, "+  1 hours 45 minutes  Bugfix  https://tracker.example/B-1") {
				t.Errorf("list output = %q", out)
			}

			out = run(t, "status")
			if !strings.Contains(out, "Tuesday, Mar 5: 4 hours 15 minutes • 43$") {
				t.Errorf("status output = %q", out)
			}

			var r monthReport
			if err := json.Unmarshal([]byte(run(t, "summary", "--month", "2024-03", "--format", "json")), &r); err != nil {
				t.Fatalf("summary json: %v", err)
			}
			if r.Summary.AmountEarned != 43 || r.Summary.HoursWorked != 4.25 {
				t.Errorf("summary = %+v", r.Summary)
			}

			run(t, "rm", bugfix)
			out = run(t, "export", "--month", "2024-03", "--date", "", "--format", "csv")
			if strings.Count(out, "\n") != 2 || strings.Contains(out, "Bugfix") {
				t.Errorf("csv after rm = %q", out)
			}

			out = run(t, "calendar", "--month", "2024-03")
			if !strings.Contains(out, "March 2024") || !strings.Contains(out, "Mon") {
				t.Errorf("calendar output = %q", out)
			}
		})
	}
}
