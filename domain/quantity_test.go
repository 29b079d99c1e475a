package domain

import (
	"errors"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		value float64
		unit  string
	}{
		{"grams attached", "300g", 300, "g"},
		{"decimal with space", "1.5 kg", 1.5, "kg"},
		{"comma decimal", "2,5 l", 2.5, "l"},
		{"bare count", "2", 2, ""},
		{"percent unit", "50%", 50, "%"},
		{"surrounding whitespace", "  4 pcs  ", 4, "pcs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuantity(tt.raw)
			if err != nil {
				t.Fatalf("ParseQuantity(%q) returned error: %v", tt.raw, err)
			}
			if q.Value != tt.value || q.Unit != tt.unit {
				t.Errorf("ParseQuantity(%q) = %v %q, want %v %q", tt.raw, q.Value, q.Unit, tt.value, tt.unit)
			}
		})
	}
}

func TestParseQuantityRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrQuantityParse},
		{"no number", "some", ErrQuantityParse},
		{"negative", "-5g", ErrQuantityParse},
		{"unit before number", "g300", ErrQuantityParse},
		{"zero", "0", ErrQuantityNegative},
		{"zero with unit", "0 kg", ErrQuantityNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQuantity(tt.raw); !errors.Is(err, tt.want) {
				t.Errorf("ParseQuantity(%q) error = %v, want %v", tt.raw, err, tt.want)
			}
		})
	}
}

func TestQuantityString(t *testing.T) {
	if got := (Quantity{Value: 1.5, Unit: "kg"}).String(); got != "1.5 kg" {
		t.Errorf("String() = %q, want %q", got, "1.5 kg")
	}
	if got := (Quantity{Value: 3}).String(); got != "3" {
		t.Errorf("String() = %q, want %q", got, "3")
	}
}
