package pricing

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestResolveTier_CoversWholeDomain(t *testing.T) {
	for q := 1; q <= 200; q++ {
		tier, err := ResolveTier(q)
		if err != nil {
			t.Fatalf("ResolveTier(%d) returned error: %v", q, err)
		}
		if q < tier.Min || q > tier.Max {
			t.Fatalf("ResolveTier(%d) = %s [%d..%d], quantity outside range", q, tier.ID, tier.Min, tier.Max)
		}
	}
}

func TestResolveTier_SameBandSameResult(t *testing.T) {
	for _, r := range Ranges() {
		lo, err := ResolveTier(r.Min)
		if err != nil {
			t.Fatalf("ResolveTier(%d): %v", r.Min, err)
		}
		hi, err := ResolveTier(r.Max)
		if err != nil {
			t.Fatalf("ResolveTier(%d): %v", r.Max, err)
		}
		if lo != hi {
			t.Fatalf("band edges disagree: %v vs %v", lo, hi)
		}
	}
}

func TestResolveTier_KnownBands(t *testing.T) {
	cases := []struct {
		quantity int
		wantID   string
	}{
		{1, "R1"},
		{10, "R2"},
		{20, "R4"},
		{25, "R5"},
		{200, "R22"},
	}
	for _, tc := range cases {
		tier, err := ResolveTier(tc.quantity)
		if err != nil {
			t.Fatalf("ResolveTier(%d): %v", tc.quantity, err)
		}
		if tier.ID != tc.wantID {
			t.Fatalf("ResolveTier(%d) = %s, want %s", tc.quantity, tier.ID, tc.wantID)
		}
	}
}

func TestResolveTier_RejectsOutOfDomain(t *testing.T) {
	for _, q := range []int{0, -3, 201, 5000} {
		_, err := ResolveTier(q)
		if err == nil {
			t.Fatalf("ResolveTier(%d) should fail", q)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ResolveTier(%d) returned %T, want *ValidationError", q, err)
		}
	}
}

func TestRanges_ContiguousNonOverlapping(t *testing.T) {
	ranges := Ranges()
	if ranges[0].Min != 1 {
		t.Fatalf("first band starts at %d, want 1", ranges[0].Min)
	}
	if ranges[len(ranges)-1].Max != 200 {
		t.Fatalf("last band ends at %d, want 200", ranges[len(ranges)-1].Max)
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Min != ranges[i-1].Max+1 {
			t.Fatalf("gap or overlap between %s and %s", ranges[i-1].ID, ranges[i].ID)
		}
	}
}
