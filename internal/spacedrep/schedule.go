package spacedrep

import "time"

// IntervalDays is the review interval in days for each bucket.
// Bucket 0 = weakest, reviewed the next day.
var IntervalDays = []int{1, 3, 7, 14, 30}

// MaxBucket is the highest bucket index in IntervalDays.
const MaxBucket = 4

// DefaultDueLimit caps how many due records the Scheduler fetches per pick.
const DefaultDueLimit = 200

// IntervalFor returns the review interval for bucket, clamped to the table.
func IntervalFor(bucket int) time.Duration {
	bucket = ClampBucket(bucket)
	return time.Duration(IntervalDays[bucket]) * 24 * time.Hour
}

// ClampBucket limits bucket to [0, MaxBucket].
func ClampBucket(bucket int) int {
	if bucket < 0 {
		return 0
	}
	if bucket > MaxBucket {
		return MaxBucket
	}
	return bucket
}
