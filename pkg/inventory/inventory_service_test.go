package inventory

import (
	"testing"
	"time"
)

func TestDetermineStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		expiry *time.Time
		want   string
	}{
		{"no expiry", nil, "Safe"},
		{"already expired", timePtr(now.AddDate(0, 0, -1)), "Expired"},
		{"inside warning window", timePtr(now.AddDate(0, 0, 2)), "Warning"},
		{"far in the future", timePtr(now.AddDate(0, 1, 0)), "Safe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineStatus(tt.expiry); got != tt.want {
				t.Errorf("determineStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
