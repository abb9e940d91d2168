// Package stale detects pull requests that are open for too long and
// notifies their authors.
package stale

import (
	"time"
)

const day = 24 * time.Hour

// AgeInDays returns the number of whole days between created and now.
// It is 0 if created is after now.
func AgeInDays(created, now time.Time) int {
	if created.After(now) {
		return 0
	}

	return int(now.Sub(created) / day)
}

// IsStale returns true if a pull request with the age of ageDays reached
// the threshold.
func IsStale(ageDays, thresholdDays int) bool {
	return ageDays >= thresholdDays
}
