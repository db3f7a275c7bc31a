package model

import "testing"

func TestParseCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"whole dollars", "99.00", 9900},
		{"with cents", "15.50", 1550},
		{"no decimals", "42", 4200},
		{"single decimal", "9.5", 950},
		{"thousands separator", "1,234.56", 123456},
		{"multiple separators", "1,234,567.89", 123456789},
		{"negative", "-15.00", -1500},
		{"zero", "0", 0},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"sub-cent rounds", "0.005", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCents(tt.input); got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMinorUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"typical", "8900", 8900},
		{"zero", "0", 0},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"negative", "-500", -500},
		{"decimal noise truncates", "8900.0", 8900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMinorUnits(tt.input); got != tt.want {
				t.Errorf("ParseMinorUnits(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"whole dollars", 9900, "99.00"},
		{"with cents", 1550, "15.50"},
		{"under a dollar", 5, "0.05"},
		{"zero", 0, "0.00"},
		{"negative", -1500, "-15.00"},
		{"large", 123456789, "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCents(tt.cents); got != tt.want {
				t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

// Amounts must survive the cents → string → cents round trip: order line
// subtotals are formatted with FormatCents and wc/v3 echoes them back as
// decimal strings.
func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1550, 9900, 123456789, -1500} {
		if got := ParseCents(FormatCents(cents)); got != cents {
			t.Errorf("round trip %d → %q → %d", cents, FormatCents(cents), got)
		}
	}
}

func TestFormatDisplayPrice(t *testing.T) {
	if got := FormatDisplayPrice(1500); got != "$15.00" {
		t.Errorf("FormatDisplayPrice(1500) = %q, want %q", got, "$15.00")
	}
}
