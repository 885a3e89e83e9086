package allocation

import "testing"

func TestClassifyTier_Brackets(t *testing.T) {
	cases := []struct {
		pctDown float64
		want    TierFraction
		ok      bool
	}{
		{0, 0.05, true},
		{10, 0.05, true},
		{-10, 0.05, true},
		{25, 0.05, true},
		{-25, 0.05, true},
		{25.0000001, 0.10, true},
		{-37.5, 0.10, true},
		{50, 0.10, true},
		{50.0000001, 0.15, true},
		{-62, 0.15, true},
		{75, 0.15, true},
		{75.0000001, 0.20, true},
		{-88, 0.20, true},
		{99.9, 0.20, true},
		{-99.9, 0.20, true},
		{99.91, 0, false},
		{100, 0, false},
		{-100, 0, false},
		{150, 0, false},
	}

	for _, tc := range cases {
		got, ok := ClassifyTier(tc.pctDown)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ClassifyTier(%v) = (%v, %v), want (%v, %v)", tc.pctDown, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassifyTier_IsPure(t *testing.T) {
	for _, pctDown := range []float64{-37.5, 25, 99.9, 120} {
		first, firstOK := ClassifyTier(pctDown)
		second, secondOK := ClassifyTier(pctDown)
		if first != second || firstOK != secondOK {
			t.Errorf("ClassifyTier(%v) is not idempotent: (%v,%v) vs (%v,%v)", pctDown, first, firstOK, second, secondOK)
		}
	}
}
