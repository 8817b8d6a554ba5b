package billing

import "testing"

func TestResolveTier(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   Tier
	}{
		{"Single day", 1, StandardTier},
		{"Four days", 4, StandardTier},
		{"Silver lower bound", 5, SilverTier},
		{"Fourteen days", 14, SilverTier},
		{"Gold lower bound", 15, GoldTier},
		{"Full month", 31, GoldTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTier(tt.length); got != tt.want {
				t.Errorf("ResolveTier(%d) = %+v, want %+v", tt.length, got, tt.want)
			}
		})
	}
}

func TestResolveTier_MonotonicWithKnownDiscounts(t *testing.T) {
	prev := -1
	for length := 1; length <= 366; length++ {
		discount := ResolveTier(length).Discount

		if discount != 0 && discount != 5 && discount != 10 {
			t.Fatalf("ResolveTier(%d).Discount = %d, not one of 0, 5, 10", length, discount)
		}
		if discount < prev {
			t.Fatalf("ResolveTier(%d).Discount = %d decreased from %d", length, discount, prev)
		}
		prev = discount
	}
}
