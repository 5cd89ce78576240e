// Package series builds chart series: bucket sizing, deterministic mock
// synthesis, adaptation of fetched candles and y-axis domain computation.
// Everything here is a pure function of its inputs.
package series

import (
	"strconv"
	"time"
)

const (
	// MinBucketCount and MaxBucketCount bound synthesis cost and chart density.
	MinBucketCount = 1
	MaxBucketCount = 1000

	defaultBucket      = 60 * time.Minute
	defaultOverallDays = 30

	// maxBucket is the longest overall range; a bucket never spans more.
	maxBucket = 1825 * 24 * time.Hour
)

// IntervalSpec describes one bucket interval label.
type IntervalSpec struct {
	Label  string
	Bucket time.Duration
}

// BucketLabels are the bucket intervals offered by the chart controls.
var BucketLabels = []string{"5m", "15m", "30m", "1h", "4h", "1d"}

// OverallLabels are the overall ranges offered by the time selector.
var OverallLabels = []string{"1d", "1w", "1m", "3m", "6m", "1y", "5y"}

// overallDays maps an overall range label to a day count.
// "1m" here is one month, not one minute.
var overallDays = map[string]int{
	"1d": 1,
	"1w": 7,
	"1m": 30,
	"3m": 90,
	"6m": 180,
	"1y": 365,
	"5y": 1825,
}

// ParseBucket parses a bucket label of the form <integer><unit> with unit in
// {m, h, d}. Anything else, including a bucket longer than five years,
// resolves to a 60 minute bucket.
func ParseBucket(label string) IntervalSpec {
	if len(label) < 2 {
		return IntervalSpec{Label: label, Bucket: defaultBucket}
	}
	n, err := strconv.Atoi(label[:len(label)-1])
	if err != nil || n <= 0 {
		return IntervalSpec{Label: label, Bucket: defaultBucket}
	}

	var unit time.Duration
	switch label[len(label)-1] {
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return IntervalSpec{Label: label, Bucket: defaultBucket}
	}
	if int64(n) > int64(maxBucket/unit) {
		return IntervalSpec{Label: label, Bucket: defaultBucket}
	}
	return IntervalSpec{Label: label, Bucket: time.Duration(n) * unit}
}

// OverallDays returns the day count of an overall range label, 30 when unknown.
func OverallDays(label string) int {
	if d, ok := overallDays[label]; ok {
		return d
	}
	return defaultOverallDays
}

// ResolveBucketCount returns how many buckets of the given size span the
// overall range, clamped to [MinBucketCount, MaxBucketCount].
func ResolveBucketCount(overall, bucket string) int {
	minutes := int64(ParseBucket(bucket).Bucket / time.Minute)
	total := int64(OverallDays(overall)) * 24 * 60

	n := total / minutes
	if n < MinBucketCount {
		return MinBucketCount
	}
	if n > MaxBucketCount {
		return MaxBucketCount
	}
	return int(n)
}
