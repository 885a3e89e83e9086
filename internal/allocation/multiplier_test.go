package allocation

import (
	"errors"
	"math"
	"testing"

	"tier-trader/internal/screener"
)

func TestCompose_CombinesThreeFactors(t *testing.T) {
	mult, err := Compose("💥", 100, 120, "1.5")
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	if mult.IconMult != 0.9 {
		t.Errorf("expected icon_mult 0.9, got %v", mult.IconMult)
	}
	if mult.MARatio != 1.2 {
		t.Errorf("expected ma_ratio 1.2, got %v", mult.MARatio)
	}
	if mult.SentimentMult != 1.5 {
		t.Errorf("expected sentiment_mult 1.5, got %v", mult.SentimentMult)
	}
	if diff := math.Abs(mult.Product() - 0.9*1.2*1.5); diff > 1e-12 {
		t.Errorf("unexpected product, diff=%v", diff)
	}
}

func TestCompose_MARatioIsUnclamped(t *testing.T) {
	amplified, err := Compose("💎", 100, 1000, "1")
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if amplified.MARatio != 10 {
		t.Errorf("expected amplifying ratio 10, got %v", amplified.MARatio)
	}

	dampened, err := Compose("💎", 100, 50, "1")
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if dampened.MARatio != 0.5 {
		t.Errorf("expected dampening ratio 0.5, got %v", dampened.MARatio)
	}
}

func TestCompose_RejectsUnknownIcon(t *testing.T) {
	_, err := Compose("🧊", 100, 120, "1")
	if !errors.Is(err, screener.ErrIconNotAllowed) {
		t.Fatalf("expected ErrIconNotAllowed, got %v", err)
	}
}

func TestCompose_SentimentGate(t *testing.T) {
	for _, sentiment := range []string{"", "   ", "abc", "0", "-2"} {
		_, err := Compose("💎", 100, 120, sentiment)
		if !errors.Is(err, ErrSentimentMissing) {
			t.Errorf("sentiment %q: expected ErrSentimentMissing, got %v", sentiment, err)
		}
	}

	mult, err := Compose("💎", 100, 120, " 2.5 ")
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if mult.SentimentMult != 2.5 {
		t.Errorf("expected sentiment used verbatim as 2.5, got %v", mult.SentimentMult)
	}
}

func TestCompose_IsPure(t *testing.T) {
	first, err1 := Compose("🚀", 80, 96, "1.1")
	second, err2 := Compose("🚀", 80, 96, "1.1")
	if err1 != nil || err2 != nil {
		t.Fatalf("Compose returned error: %v / %v", err1, err2)
	}
	if first != second {
		t.Errorf("Compose is not idempotent: %+v vs %+v", first, second)
	}
}
