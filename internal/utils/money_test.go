package utils

import "testing"

func TestFormatUSD(t *testing.T) {
	if got := FormatUSD(270); got != "$270.00" {
		t.Fatalf("expected $270.00, got %q", got)
	}
	if got := FormatUSD(89.5); got != "$89.50" {
		t.Fatalf("expected $89.50, got %q", got)
	}
	if got := FormatUSD(-12.345); got != "-$12.35" {
		t.Fatalf("expected -$12.35, got %q", got)
	}
}

func TestRoundMoney(t *testing.T) {
	if got := RoundMoney(0.1 + 0.2); got != 0.3 {
		t.Fatalf("expected 0.3, got %v", got)
	}
	if got := RoundMoney(99.999); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}
