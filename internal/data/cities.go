// Package data holds the static city list offered by the filter selectors.
package data

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UnselectedLabel is the selector label for the empty (no filter) option.
const UnselectedLabel = "Не выбрано"

var cityNames = []string{
	"Москва",
	"Санкт-Петербург",
	"Симферополь",
	"Севастополь",
	"Ялта",
	"Керчь",
	"Феодосия",
	"Евпатория",
	"Краснодар",
	"Ростов-на-Дону",
	"Анапа",
	"Новороссийск",
	"Воронеж",
	"Белгород",
	"Курск",
	"Донецк",
	"Луганск",
	"Мелитополь",
}

var index = func() map[string]struct{} {
	m := make(map[string]struct{}, len(cityNames))
	for _, c := range cityNames {
		m[c] = struct{}{}
	}
	return m
}()

// Cities returns the city list in its authored order, the order the
// selectors show.
func Cities() []string {
	out := make([]string, len(cityNames))
	copy(out, cityNames)
	return out
}

// SortedCities returns the cities in Russian alphabetical order, for
// listings where the operator scans by name.
func SortedCities() []string {
	out := Cities()
	collate.New(language.Russian).SortStrings(out)
	return out
}

// IsKnownCity reports whether name is one of the selectable cities.
func IsKnownCity(name string) bool {
	_, ok := index[name]
	return ok
}

// Option is one entry of a city selector.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CityOptions returns the selector options: the empty choice first, then every city.
func CityOptions() []Option {
	cities := Cities()
	out := make([]Option, 0, len(cities)+1)
	out = append(out, Option{Value: "", Label: UnselectedLabel})
	for _, c := range cities {
		out = append(out, Option{Value: c, Label: c})
	}
	return out
}

// SelectableOrEmpty maps values the selector cannot express to the empty choice.
func SelectableOrEmpty(name string) string {
	if name == "" || !IsKnownCity(name) {
		return ""
	}
	return name
}
