package spacedrep

import (
	"testing"
	"time"
)

func TestIntervalDays(t *testing.T) {
	expected := []int{1, 3, 7, 14, 30}
	if len(IntervalDays) != len(expected) {
		t.Fatalf("IntervalDays length = %d, want %d", len(IntervalDays), len(expected))
	}
	for i, v := range expected {
		if IntervalDays[i] != v {
			t.Errorf("IntervalDays[%d] = %d, want %d", i, IntervalDays[i], v)
		}
	}
	if MaxBucket != len(IntervalDays)-1 {
		t.Errorf("MaxBucket = %d, want %d", MaxBucket, len(IntervalDays)-1)
	}
}

func TestIntervalFor(t *testing.T) {
	tests := []struct {
		bucket int
		want   time.Duration
	}{
		{-1, 24 * time.Hour},
		{0, 24 * time.Hour},
		{1, 3 * 24 * time.Hour},
		{2, 7 * 24 * time.Hour},
		{3, 14 * 24 * time.Hour},
		{4, 30 * 24 * time.Hour},
		{9, 30 * 24 * time.Hour},
	}
	for _, tt := range tests {
		if got := IntervalFor(tt.bucket); got != tt.want {
			t.Errorf("IntervalFor(%d) = %v, want %v", tt.bucket, got, tt.want)
		}
	}
}
