package timeutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/fieldroute/internal/timeutil"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected string
	}{
		{"midnight", 0, "00:00:00"},
		{"8am", 28800, "08:00:00"},
		{"8:05am", 29100, "08:05:00"},
		{"noon", 43200, "12:00:00"},
		{"5pm", 61200, "17:00:00"},
		{"23:59:59", 86399, "23:59:59"},
		{"over 24h", 90000, "25:00:00"},
		{"negative", -3600, "-01:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := timeutil.FormatClock(tt.seconds)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int
		expectErr bool
	}{
		{"midnight", "00:00:00", 0, false},
		{"8am", "08:00:00", 28800, false},
		{"8:05am", "08:05:00", 29100, false},
		{"noon", "12:00:00", 43200, false},
		{"invalid format", "8:00", 0, true},
		{"invalid hour", "xx:00:00", 0, true},
		{"invalid minute", "08:xx:00", 0, true},
		{"minute > 59", "08:60:00", 0, true},
		{"second > 59", "08:00:60", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := timeutil.ParseClock(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestNormalizeWindow(t *testing.T) {
	tests := []struct {
		name          string
		open, close   int
		wantO, wantC  int
	}{
		{"same day", 28800, 61200, 28800, 61200},       // 08:00 - 17:00
		{"cross midnight", 79200, 7200, 79200, 93600},  // 22:00 - 02:00 -> 22:00 - 26:00
		{"same time", 28800, 28800, 28800, 28800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotO, gotC := timeutil.NormalizeWindow(tt.open, tt.close)
			assert.Equal(t, tt.wantO, gotO)
			assert.Equal(t, tt.wantC, gotC)
		})
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected bool
	}{
		{"midnight", 0, true},
		{"noon", 43200, true},
		{"23:59:59", 86399, true},
		{"negative", -1, false},
		{"24:00:00", 86400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := timeutil.IsValidTimeOfDay(tt.seconds)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRebase(t *testing.T) {
	assert.Equal(t, 3600, timeutil.Rebase(7200, 3600))
	assert.Equal(t, 0, timeutil.Rebase(3600, 3600))
}
