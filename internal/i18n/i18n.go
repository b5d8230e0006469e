// Package i18n holds the display strings and locale conventions for the
// supported languages and currencies. It has no computational effect.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

// Key identifies a translatable label.
type Key string

const (
	Hours          Key = "hours"
	Minutes        Key = "minutes"
	Earned         Key = "earned"
	Worked         Key = "worked"
	Of             Key = "of"
	Days           Key = "days"
	For            Key = "for"
	Remaining      Key = "remaining"
	Possible       Key = "possible"
	Progress       Key = "progress"
	Goal           Key = "goal"
	Projected      Key = "projected"
	PerDayNeeded   Key = "perDayNeeded"
	NoEntries      Key = "noEntries"
	SettingsNotice Key = "settingsIncomplete"
)

var translations = map[model.Language]map[Key]string{
	model.LangRU: {
		Hours:          "ч",
		Minutes:        "мин",
		Earned:         "Заработано",
		Worked:         "Отработано",
		Of:             "из",
		Days:           "дней",
		For:            "за",
		Remaining:      "Осталось",
		Possible:       "Возможно",
		Progress:       "Прогресс",
		Goal:           "Цель",
		Projected:      "Прогноз",
		PerDayNeeded:   "Нужно в день",
		NoEntries:      "Нет записей.",
		SettingsNotice: "Укажите ставку и часы в день в настройках.",
	},
	model.LangEN: {
		Hours:          "hours",
		Minutes:        "minutes",
		Earned:         "Earned",
		Worked:         "Worked",
		Of:             "of",
		Days:           "days",
		For:            "for",
		Remaining:      "Remaining",
		Possible:       "Possible",
		Progress:       "Progress",
		Goal:           "Goal",
		Projected:      "Projected",
		PerDayNeeded:   "Needed per day",
		NoEntries:      "No entries found.",
		SettingsNotice: "Set an hourly rate and hours per day in settings.",
	},
	model.LangZH: {
		Hours:          "小时",
		Minutes:        "分钟",
		Earned:         "已赚",
		Worked:         "已工作",
		Of:             "共",
		Days:           "天",
		For:            "剩余",
		Remaining:      "剩余",
		Possible:       "可能",
		Progress:       "进度",
		Goal:           "目标",
		Projected:      "预计",
		PerDayNeeded:   "每天需要",
		NoEntries:      "没有记录。",
		SettingsNotice: "请在设置中填写时薪和每日工时。",
	},
}

// T returns the label for key in lang, falling back to Russian.
func T(lang model.Language, key Key) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return translations[model.LangRU][key]
}

// DayWord returns the Russian plural form of "day" for n; other languages use
// the plain Days label.
func DayWord(lang model.Language, n int) string {
	if lang != model.LangRU {
		return T(lang, Days)
	}
	switch {
	case n%10 == 1 && n%100 != 11:
		return "день"
	case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
		return "дня"
	default:
		return "дней"
	}
}

var weekdayLabels = map[model.Language][7]string{
	model.LangRU: {"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"},
	model.LangEN: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	model.LangZH: {"周日", "周一", "周二", "周三", "周四", "周五", "周六"},
}

// WeekdayLabels returns the grid header starting on Sunday or Monday.
func WeekdayLabels(lang model.Language, startFromSunday bool) [7]string {
	src, ok := weekdayLabels[lang]
	if !ok {
		src = weekdayLabels[model.LangRU]
	}
	if startFromSunday {
		return src
	}
	var out [7]string
	for i := range out {
		out[i] = src[(i+1)%7]
	}
	return out
}

var (
	monthNamesRU = [12]string{"январь", "февраль", "март", "апрель", "май", "июнь",
		"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь"}
	monthShortRU = [12]string{"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
		"июл.", "авг.", "сент.", "окт.", "нояб.", "дек."}
	weekdayLongRU = [7]string{"воскресенье", "понедельник", "вторник", "среда",
		"четверг", "пятница", "суббота"}
	weekdayLongZH = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}
)

// MonthLabel formats the month header, e.g. "Март 2024", "March 2024", "2024年3月".
func MonthLabel(lang model.Language, t time.Time) string {
	switch lang {
	case model.LangEN:
		return t.Format("January 2006")
	case model.LangZH:
		return fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))
	default:
		name := cases.Title(language.Russian).String(monthNamesRU[t.Month()-1])
		return fmt.Sprintf("%s %d", name, t.Year())
	}
}

// ShortDayLabel formats a day without weekday, e.g. "5 мар.", "Mar 5", "3月5日".
func ShortDayLabel(lang model.Language, t time.Time) string {
	switch lang {
	case model.LangEN:
		return t.Format("Jan 2")
	case model.LangZH:
		return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
	default:
		return fmt.Sprintf("%d %s", t.Day(), monthShortRU[t.Month()-1])
	}
}

// LongDayLabel formats a day with its weekday, e.g. "вторник, 5 мар.".
func LongDayLabel(lang model.Language, t time.Time) string {
	switch lang {
	case model.LangEN:
		return t.Format("Monday, Jan 2")
	case model.LangZH:
		return fmt.Sprintf("%d月%d日%s", int(t.Month()), t.Day(), weekdayLongZH[t.Weekday()])
	default:
		return weekdayLongRU[t.Weekday()] + ", " + ShortDayLabel(lang, t)
	}
}

// CurrencySymbol returns the narrow symbol for c.
func CurrencySymbol(c model.Currency) string {
	switch c {
	case model.CurrencyCNY:
		return "¥"
	case model.CurrencyUSD:
		return "$"
	case model.CurrencyEUR:
		return "€"
	default:
		return "₽"
	}
}

// CurrencyLocale returns the locale whose digit grouping is used for c.
func CurrencyLocale(c model.Currency) language.Tag {
	switch c {
	case model.CurrencyCNY:
		return language.SimplifiedChinese
	case model.CurrencyUSD:
		return language.AmericanEnglish
	case model.CurrencyEUR:
		return language.German
	default:
		return language.Russian
	}
}

// FormatMoney renders a whole-unit amount with locale grouping and symbol,
// e.g. "40 000 ₽" or "$40,000".
func FormatMoney(amount int64, c model.Currency) string {
	p := message.NewPrinter(CurrencyLocale(c))
	n := p.Sprintf("%d", amount)
	switch c {
	case model.CurrencyUSD, model.CurrencyCNY:
		return CurrencySymbol(c) + n
	default:
		return n + " " + CurrencySymbol(c)
	}
}
