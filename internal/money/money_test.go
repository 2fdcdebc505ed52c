package money

import "testing"

func TestParseMinor(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr error
	}{
		{"12.50", 1250, nil},
		{"0.5", 50, nil},
		{"100", 10000, nil},
		{"-3.25", -325, nil},
		{"1.999", 0, ErrTooManyDecimals},
		{"abc", 0, ErrInvalidAmount},
		{"", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseMinor(tc.input)
		if err != tc.wantErr {
			t.Fatalf("ParseMinor(%q) error = %v, want %v", tc.input, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseMinor(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParsePositiveMinor(t *testing.T) {
	if _, err := ParsePositiveMinor("0"); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := ParsePositiveMinor("-5"); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	got, err := ParsePositiveMinor("20")
	if err != nil || got != 2000 {
		t.Fatalf("ParsePositiveMinor(20) = %d, %v", got, err)
	}
}

func TestFormatMinor(t *testing.T) {
	if got := FormatMinor(1250); got != "12.50" {
		t.Fatalf("FormatMinor(1250) = %q", got)
	}
	if got := FormatMinor(-5); got != "-0.05" {
		t.Fatalf("FormatMinor(-5) = %q", got)
	}
	if got := FormatSignedMinor(2000); got != "+20.00" {
		t.Fatalf("FormatSignedMinor(2000) = %q", got)
	}
	if got := FormatSignedMinor(-2000); got != "-20.00" {
		t.Fatalf("FormatSignedMinor(-2000) = %q", got)
	}
}
