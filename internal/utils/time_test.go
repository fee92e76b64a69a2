package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatRouteDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-07": "07 марта 2024",
		"2023-01-31": "31 января 2023",
		"2025-12-01": "01 декабря 2025",
		"2025-05-09": "09 мая 2025",
	}
	for in, want := range cases {
		if got := FormatRouteDate(in); got != want {
			t.Fatalf("FormatRouteDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRouteDate_MalformedReturnedAsIs(t *testing.T) {
	for _, in := range []string{"", "2024/03/07", "2024-13-01", "today"} {
		if got := FormatRouteDate(in); got != in {
			t.Fatalf("FormatRouteDate(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := SafeFilenamePart("Москва - Тула"); got != "Москва___Тула" {
		t.Fatalf("unexpected filename part %q", got)
	}
	if got := SafeFilenamePart("  "); got != "all" {
		t.Fatalf("empty input should become all, got %q", got)
	}
}

func TestTransliterate(t *testing.T) {
	cases := map[string]string{
		"Ялта":           "Yalta",
		"Ростов-на-Дону": "Rostov-na-Donu",
		"Щёкино":         "Shchekino",
		"route 7":        "route 7",
	}
	for in, want := range cases {
		if got := Transliterate(in); got != want {
			t.Fatalf("Transliterate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes(strings.Repeat("ж", 300), 255); got != strings.Repeat("ж", 255) {
		t.Fatalf("expected 255 runes, got %d bytes valid=%v", len(got), utf8.ValidString(got))
	}
	if got := TruncateRunes("short", 255); got != "short" {
		t.Fatalf("short input changed: %q", got)
	}
	if got := TruncateRunes("abc", 0); got != "" {
		t.Fatalf("zero limit should give empty string, got %q", got)
	}
}
