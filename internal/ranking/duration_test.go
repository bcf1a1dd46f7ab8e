package ranking

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"hours minutes seconds", "PT1H2M3S", 3723},
		{"minutes seconds", "PT38M12S", 2292},
		{"seconds only", "PT45S", 45},
		{"hours only", "PT2H", 7200},
		{"minutes only", "PT2M", 120},
		{"day component", "P1DT2H", 93600},
		{"compact form", "1h2m3s", 3723},
		{"compact upper", "2M", 120},
		{"empty", "", 0},
		{"garbage", "ten minutes", 0},
		{"lowercase iso", "pt1m", 0},
		{"trailing junk", "PT1M5", 0},
		{"negative", "PT-5S", 0},
		{"overflow", "PT99999999999999999999H", MaxDurationSeconds},
		{"component over cap", "P30000DT0S", MaxDurationSeconds},
		{"sum over cap", "PT596523H59M59S", MaxDurationSeconds},
		{"exactly cap", "PT596523H14M7S", MaxDurationSeconds},
		{"one below cap", "PT596523H14M6S", MaxDurationSeconds - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDuration(tt.in); got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDuration_NeverNegative(t *testing.T) {
	inputs := []string{"P", "PT", "PT0S", "P0D", "h", "PT2147483647S"}
	for _, in := range inputs {
		if got := ParseDuration(in); got < 0 {
			t.Errorf("ParseDuration(%q) = %d, want >= 0", in, got)
		}
	}
}
