package utils

import (
	"strings"
	"time"
)

// monthsGenitive maps a two-digit month to its Russian genitive name,
// the form used after a day number ("07 марта").
var monthsGenitive = map[string]string{
	"01": "января",
	"02": "февраля",
	"03": "марта",
	"04": "апреля",
	"05": "мая",
	"06": "июня",
	"07": "июля",
	"08": "августа",
	"09": "сентября",
	"10": "октября",
	"11": "ноября",
	"12": "декабря",
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatRouteDate renders "YYYY-MM-DD" as "DD monthname YYYY".
// Input that does not split into year, known month and day is returned as is.
func FormatRouteDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	year, month, day := parts[0], parts[1], parts[2]
	name, ok := monthsGenitive[month]
	if !ok {
		return date
	}
	return day + " " + name + " " + year
}
