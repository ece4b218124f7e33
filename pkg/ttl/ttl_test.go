package ttl

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		magnitude uint64
		unit      string
		want      uint64
	}{
		{name: "one hour", magnitude: 1, unit: UnitHours, want: 3600},
		{name: "two minutes", magnitude: 2, unit: UnitMinutes, want: 120},
		{name: "unrecognized unit falls back to hours", magnitude: 5, unit: "bogus", want: 18000},
		{name: "empty unit falls back to hours", magnitude: 3, unit: "", want: 10800},
		{name: "zero magnitude", magnitude: 0, unit: UnitHours, want: 0},
		{name: "case sensitive unit", magnitude: 1, unit: "Minutes", want: 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Resolve(tt.magnitude, tt.unit))
		})
	}
}

func TestResolveSaturates(t *testing.T) {
	t.Parallel()

	// Max magnitude cannot overflow, it clamps
	assert.Equal(t, uint64(math.MaxUint64), Resolve(math.MaxUint64, UnitHours))
	assert.Equal(t, uint64(math.MaxUint64), Resolve(math.MaxUint64, UnitMinutes))

	// Just below the clamp boundary multiplies exactly
	boundary := uint64(math.MaxUint64) / 3600
	assert.Equal(t, boundary*3600, Resolve(boundary, UnitHours))
	assert.Equal(t, uint64(math.MaxUint64), Resolve(boundary+1, UnitHours))
}

func TestDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Hour, Duration(3600))
	assert.Equal(t, time.Duration(0), Duration(0))

	// Values beyond the representable range clamp instead of wrapping negative
	assert.Equal(t, time.Duration(math.MaxInt64), Duration(math.MaxUint64))
	assert.Positive(t, Duration(math.MaxUint64))
}
