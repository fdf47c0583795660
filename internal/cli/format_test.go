package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{5.5, "$5.50"},
		{99.99, "$99.99"},
		{100, "$100"},
		{250.4, "$250"},
		{999.99, "$1000"},
		{1000, "$1,000"},
		{1234.5, "$1,235"},
		{1234567.89, "$1,234,568"},
		{-5.5, "-$5.50"},
		{-1234.5, "-$1,235"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{5.5, "+$5.50"},
		{0, "+$0.00"},
		{-25, "-$25.00"},
		{1500, "+$1,500"},
	}

	for _, tt := range tests {
		if got := FormatSigned(tt.amount); got != tt.want {
			t.Errorf("FormatSigned(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(66.666); got != "66.7%" {
		t.Errorf("FormatPercent(66.666) = %q, want %q", got, "66.7%")
	}
	if got := FormatPercent(0); got != "0.0%" {
		t.Errorf("FormatPercent(0) = %q, want %q", got, "0.0%")
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-06-15T10:30:00Z", "2025-06-15"},
		{"2025-06-15T10:30:00.000Z", "2025-06-15"},
		{"2025-06-15", "2025-06-15"},
		{"not a date", "not a date"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer description", 10, "a longer …"},
		{"niño pequeño corre", 6, "niño …"},
		{"ab", 1, "a"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.s, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
		}
	}
}
