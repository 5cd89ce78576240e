package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label    string
		expected time.Duration
	}{
		{"5m", 5 * time.Minute},
		{"15m", 15 * time.Minute},
		{"30m", 30 * time.Minute},
		{"1h", time.Hour},
		{"4h", 4 * time.Hour},
		{"1d", 24 * time.Hour},
		{"", time.Hour},
		{"h", time.Hour},
		{"0m", time.Hour},
		{"-5m", time.Hour},
		{"1w", time.Hour},
		{"abc", time.Hour},
		{"99999999999999d", time.Hour},
		{"1825d", 1825 * 24 * time.Hour},
		{"1826d", time.Hour},
		{"106751d", time.Hour},
		{"2628000m", 1825 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()

			spec := ParseBucket(tt.label)
			assert.Equal(t, tt.label, spec.Label)
			assert.Equal(t, tt.expected, spec.Bucket)
		})
	}
}

func TestOverallDays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, OverallDays("1d"))
	assert.Equal(t, 7, OverallDays("1w"))
	assert.Equal(t, 30, OverallDays("1m"))
	assert.Equal(t, 1825, OverallDays("5y"))
	assert.Equal(t, 30, OverallDays("10y"), "unknown label falls back to 30 days")
}

func TestResolveBucketCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		overall  string
		bucket   string
		expected int
	}{
		{"one day of hours", "1d", "1h", 24},
		{"one week of days", "1w", "1d", 7},
		{"one month of days", "1m", "1d", 30},
		{"one day of 15 minutes", "1d", "15m", 96},
		{"one week of 4 hours", "1w", "4h", 42},
		{"clamped to max", "5y", "5m", MaxBucketCount},
		{"clamped to min", "1d", "2d", MinBucketCount},
		{"unknown bucket defaults to 60 minutes", "1d", "bogus", 24},
		{"unknown overall defaults to 30 days", "bogus", "1d", 30},
		{"both unknown", "", "", 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ResolveBucketCount(tt.overall, tt.bucket))
		})
	}
}

func TestResolveBucketCount_Bounds(t *testing.T) {
	t.Parallel()

	for _, overall := range OverallLabels {
		for _, bucket := range BucketLabels {
			n := ResolveBucketCount(overall, bucket)
			assert.GreaterOrEqual(t, n, MinBucketCount, "%s/%s", overall, bucket)
			assert.LessOrEqual(t, n, MaxBucketCount, "%s/%s", overall, bucket)
			assert.Equal(t, n, ResolveBucketCount(overall, bucket), "must be stable for %s/%s", overall, bucket)
		}
	}
}
