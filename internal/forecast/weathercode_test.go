package forecast

import "testing"

func TestCodeForDescription(t *testing.T) {
	cases := []struct {
		description string
		want        int
	}{
		{"light rain", 1},
		{"thunderstorm", 1},
		{"shower rain", 1},
		{"overcast clouds", 2},
		{"broken clouds", 2},
		{"scattered clouds", 3},
		{"few clouds", 4},
		{"clear sky", 5},
		{"Light Rain", 1},        // case-insensitive
		{"  clear sky  ", 5},     // whitespace tolerated
		{"misty haze", 3},        // unmapped defaults
		{"", DefaultWeatherCode}, // empty defaults
	}
	for _, tc := range cases {
		if got := CodeForDescription(tc.description); got != tc.want {
			t.Fatalf("%q: expected %d got %d", tc.description, tc.want, got)
		}
	}
}

func TestWeekdayMon0(t *testing.T) {
	// 2025-09-01 is a Monday.
	monday := mustDate(t, 2025, 9, 1)
	if got := WeekdayMon0(monday); got != 0 {
		t.Fatalf("expected Monday=0, got %d", got)
	}
	sunday := mustDate(t, 2025, 9, 7)
	if got := WeekdayMon0(sunday); got != 6 {
		t.Fatalf("expected Sunday=6, got %d", got)
	}
}
