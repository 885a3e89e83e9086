package screener

import (
	"errors"
	"testing"
)

func TestParseRow_ValidRowIsNormalized(t *testing.T) {
	fields := makeFields(" eth ", "1850.5", "-37.5", "2000", "💎", " 1.2 ")

	row, err := ParseRow(fields)
	if err != nil {
		t.Fatalf("ParseRow returned error: %v", err)
	}

	if row.Symbol != "ETH" {
		t.Errorf("expected symbol ETH, got %q", row.Symbol)
	}
	if row.Price != 1850.5 {
		t.Errorf("expected price 1850.5, got %v", row.Price)
	}
	if row.PctDown != -37.5 {
		t.Errorf("expected pct_down -37.5, got %v", row.PctDown)
	}
	if row.LongMA != 2000 {
		t.Errorf("expected long_ma 2000, got %v", row.LongMA)
	}
	if row.Icon != "💎" {
		t.Errorf("expected icon preserved, got %q", row.Icon)
	}
	if row.Sentiment != " 1.2 " {
		t.Errorf("expected sentiment kept verbatim, got %q", row.Sentiment)
	}
}

func TestParseRow_TooFewColumns(t *testing.T) {
	_, err := ParseRow([]string{"ETH", "1850.5", "-37.5"})
	if !errors.Is(err, ErrTooFewColumns) {
		t.Fatalf("expected ErrTooFewColumns, got %v", err)
	}
}

func TestParseRow_MissingRequiredField(t *testing.T) {
	cases := map[string][]string{
		"symbol":   makeFields("   ", "1850.5", "-37.5", "2000", "💎", "1"),
		"price":    makeFields("ETH", "", "-37.5", "2000", "💎", "1"),
		"pct_down": makeFields("ETH", "1850.5", "  ", "2000", "💎", "1"),
		"long_ma":  makeFields("ETH", "1850.5", "-37.5", "", "💎", "1"),
		"icon":     makeFields("ETH", "1850.5", "-37.5", "2000", "", "1"),
	}

	for name, fields := range cases {
		if _, err := ParseRow(fields); !errors.Is(err, ErrMissingField) {
			t.Errorf("%s: expected ErrMissingField, got %v", name, err)
		}
	}
}

func TestParseRow_IconNotAllowed(t *testing.T) {
	fields := makeFields("ETH", "1850.5", "-37.5", "2000", "🧊", "1")

	_, err := ParseRow(fields)
	if !errors.Is(err, ErrIconNotAllowed) {
		t.Fatalf("expected ErrIconNotAllowed, got %v", err)
	}
}

func TestParseRow_InvalidNumericField(t *testing.T) {
	cases := map[string][]string{
		"price":    makeFields("ETH", "n/a", "-37.5", "2000", "💎", "1"),
		"pct_down": makeFields("ETH", "1850.5", "down", "2000", "💎", "1"),
		"long_ma":  makeFields("ETH", "1850.5", "-37.5", "~2000", "💎", "1"),
	}

	for name, fields := range cases {
		if _, err := ParseRow(fields); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("%s: expected ErrInvalidNumber, got %v", name, err)
		}
	}
}

func TestParseRow_NonPositivePrice(t *testing.T) {
	for _, price := range []string{"0", "-12.5"} {
		fields := makeFields("ETH", price, "-37.5", "2000", "💎", "1")
		if _, err := ParseRow(fields); !errors.Is(err, ErrNonPositivePrice) {
			t.Errorf("price=%s: expected ErrNonPositivePrice, got %v", price, err)
		}
	}
}

func TestParseFloat_AbsentAndGarbageBehaveIdentically(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "1,5", "--3"} {
		if _, ok := ParseFloat(input); ok {
			t.Errorf("input %q: expected parse failure", input)
		}
	}

	valid := map[string]float64{
		"1.5":    1.5,
		" 2 ":    2,
		"-37.5":  -37.5,
		"0":      0,
		"1e3":    1000,
		"\t4.2 ": 4.2,
	}
	for input, want := range valid {
		got, ok := ParseFloat(input)
		if !ok || got != want {
			t.Errorf("input %q: got (%v, %v), want (%v, true)", input, got, ok, want)
		}
	}
}

func TestIconMultiplier_ClosedSet(t *testing.T) {
	expected := map[string]float64{
		"💎": 1.0,
		"💥": 0.9,
		"🚀": 0.8,
		"✨": 0.7,
		"📊": 0.6,
	}

	for icon, want := range expected {
		got, ok := IconMultiplier(icon)
		if !ok || got != want {
			t.Errorf("icon %q: got (%v, %v), want (%v, true)", icon, got, ok, want)
		}
	}

	if _, ok := IconMultiplier("🧊"); ok {
		t.Errorf("expected unknown icon to be rejected")
	}
}

// makeFields 按固定列布局构造一条 16 列的原始行。
func makeFields(symbol, price, pctDown, longMA, icon, sentiment string) []string {
	fields := make([]string, MinColumns)
	fields[ColSymbol] = symbol
	fields[ColPrice] = price
	fields[ColPctDown] = pctDown
	fields[ColLongMA] = longMA
	fields[ColIcon] = icon
	fields[ColSentiment] = sentiment
	return fields
}
