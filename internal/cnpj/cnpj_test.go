package cnpj

import "testing"

func TestSanitize(t *testing.T) {
	if got := Sanitize("11.222.333/0001-81"); got != "11222333000181" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := Sanitize("abc"); got != "" {
		t.Fatalf("Sanitize(abc) = %q", got)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11222333000181", true},
		{"11222333000182", false},
		{"11111111111111", false},
		{"123", false},
		{"", false},
		{"1122233300018a", false},
	}
	for _, tc := range cases {
		if got := Valid(tc.in); got != tc.want {
			t.Fatalf("Valid(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
