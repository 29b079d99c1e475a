package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrQuantityParse    = errors.New("failed to parse quantity")
	ErrQuantityNegative = errors.New("quantity must be positive")
)

// Quantity pairs a numeric amount with its unit. Parsing is strict: malformed
// input is an error, never a silent zero.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

var quantityPattern = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)\s*([a-zA-Z%]*)$`)

// ParseQuantity reads values like "300g", "1.5 kg" or "2". A missing unit is
// allowed (piece counts); anything else fails with ErrQuantityParse.
func ParseQuantity(raw string) (Quantity, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Quantity{}, ErrQuantityParse
	}

	matches := quantityPattern.FindStringSubmatch(trimmed)
	if matches == nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrQuantityParse, raw)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(matches[1], ",", "."), 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrQuantityParse, raw)
	}

	if value <= 0 {
		return Quantity{}, ErrQuantityNegative
	}

	return Quantity{Value: value, Unit: matches[2]}, nil
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return strconv.FormatFloat(q.Value, 'f', -1, 64)
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(q.Value, 'f', -1, 64), q.Unit)
}
