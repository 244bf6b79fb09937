package phone

import "testing"

func TestDigits(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"+91 98765-43210": "919876543210",
		"98765 43210":     "9876543210",
		"":                "",
		"abc":             "",
		"(987) 654-3210":  "9876543210",
	}
	for raw, want := range cases {
		if got := Digits(raw); got != want {
			t.Fatalf("Digits(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestIsTenDigits(t *testing.T) {
	t.Parallel()

	if !IsTenDigits("98765-43210") {
		t.Fatal("expected formatted ten digit number to pass")
	}
	if IsTenDigits("12345") {
		t.Fatal("expected short number to fail")
	}
	if IsTenDigits("+91 98765-43210") {
		t.Fatal("numbers carrying the calling code are twelve digits, not ten")
	}
}

func TestDialingNumber(t *testing.T) {
	t.Parallel()

	if got := DialingNumber("98765 43210", "91"); got != "919876543210" {
		t.Fatalf("expected calling code prefix, got %q", got)
	}
	if got := DialingNumber("+91 98765-43210", "91"); got != "919876543210" {
		t.Fatalf("expected prefixed number to pass through, got %q", got)
	}
	if got := DialingNumber("", "91"); got != "" {
		t.Fatalf("expected empty result for empty input, got %q", got)
	}
	if got := DialingNumber("12345", "91"); got != "12345" {
		t.Fatalf("odd lengths pass through as bare digits, got %q", got)
	}
}
