package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-earnings-tracker/internal/model"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective earnings settings",
	Long: `Show the effective earnings settings: the stored values with any TET_*
environment overrides applied.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a stored setting",
	Long: `Change a stored setting. Keys:
  hourly_rate, hours_per_day, desired_monthly_income  numbers, "," or "." as decimal separator
  calculation_mode                                    income | hours
  include_weekends, start_from_sunday                 true | false
  language                                            ru | en | zh
  currency                                            RUB | USD | EUR | CNY`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp()
	defer a.close()

	printSettings(cmd.OutOrStdout(), a.loadSettings(ctx))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp()
	defer a.close()

	stored, err := a.settings.Load(ctx)
	if err != nil {
		exitStorage(err)
	}
	updated, err := applySetting(stored, args[0], args[1])
	if err != nil {
		return err
	}
	if err := a.settings.Save(ctx, updated); err != nil {
		exitStorage(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", strings.ToLower(args[0]), settingValues(updated)[strings.ToLower(args[0])])
	return nil
}

// settingValues renders every setting as key → text.
func settingValues(s model.Settings) map[string]string {
	return map[string]string{
		"hourly_rate":            s.HourlyRate,
		"hours_per_day":          s.HoursPerDay,
		"desired_monthly_income": s.DesiredMonthlyIncome,
		"calculation_mode":       string(s.CalculationMode),
		"include_weekends":       strconv.FormatBool(s.IncludeWeekends),
		"start_from_sunday":      strconv.FormatBool(s.StartFromSunday),
		"language":               string(s.Language),
		"currency":               string(s.Currency),
	}
}

func printSettings(w io.Writer, s model.Settings) {
	values := settingValues(s)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%-24s%s\n", k, values[k])
	}
}

// applySetting validates value for key and returns the updated settings.
func applySetting(s model.Settings, key, value string) (model.Settings, error) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "hourly_rate":
		if err := checkNumber(key, value); err != nil {
			return s, err
		}
		s.HourlyRate = value
	case "hours_per_day":
		if err := checkNumber(key, value); err != nil {
			return s, err
		}
		s.HoursPerDay = value
	case "desired_monthly_income":
		if err := checkNumber(key, value); err != nil {
			return s, err
		}
		s.DesiredMonthlyIncome = value
	case "calculation_mode":
		switch m := model.CalculationMode(strings.ToLower(value)); m {
		case model.ModeIncome, model.ModeHours:
			s.CalculationMode = m
		default:
			return s, fmt.Errorf("invalid calculation_mode %q: must be income or hours", value)
		}
	case "include_weekends", "start_from_sunday":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("invalid %s %q: must be true or false", key, value)
		}
		if strings.ToLower(key) == "include_weekends" {
			s.IncludeWeekends = b
		} else {
			s.StartFromSunday = b
		}
	case "language":
		switch l := model.Language(strings.ToLower(value)); l {
		case model.LangRU, model.LangEN, model.LangZH:
			s.Language = l
		default:
			return s, fmt.Errorf("invalid language %q: must be ru, en or zh", value)
		}
	case "currency":
		switch c := model.Currency(strings.ToUpper(value)); c {
		case model.CurrencyRUB, model.CurrencyUSD, model.CurrencyEUR, model.CurrencyCNY:
			s.Currency = c
		default:
			return s, fmt.Errorf("invalid currency %q: must be RUB, USD, EUR or CNY", value)
		}
	default:
		return s, fmt.Errorf("unknown setting %q", key)
	}
	return s, nil
}

// checkNumber accepts an empty value (unset) or a non-negative decimal.
func checkNumber(key, value string) error {
	if value == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.Replace(value, ",", ".", 1))
	if err != nil {
		return fmt.Errorf("invalid %s %q: not a number", key, value)
	}
	if d.IsNegative() {
		return fmt.Errorf("invalid %s %q: cannot be negative", key, value)
	}
	return nil
}
