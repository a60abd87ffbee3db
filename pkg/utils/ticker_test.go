package utils

import "testing"

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NVDA", "NVDA"},
		{"nvda", "NVDA"},
		{" aapl ", "AAPL"},
		{"$MSFT", "MSFT"},
		{"brk.b", "BRK.B"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeTicker(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestPadCIK(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1067983", "0001067983"},
		{"0001067983", "0001067983"},
		{"001067983", "0001067983"},
		{" 320193 ", "0000320193"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := PadCIK(tt.input); got != tt.expected {
				t.Errorf("PadCIK(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrimCIK(t *testing.T) {
	if got := TrimCIK("0001067983"); got != "1067983" {
		t.Errorf("TrimCIK = %q, want 1067983", got)
	}
	if got := TrimCIK("00abc"); got != "abc" {
		t.Errorf("TrimCIK(non numeric) = %q, want abc", got)
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric("0001067983") {
		t.Error("expected digits to be numeric")
	}
	if IsNumeric("") || IsNumeric("12a") {
		t.Error("expected empty and mixed strings to be non-numeric")
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Error("StringPtr(\"\") should be nil")
	}
	if p := StringPtr("NVDA"); p == nil || *p != "NVDA" {
		t.Errorf("StringPtr(NVDA) = %v", p)
	}
}
