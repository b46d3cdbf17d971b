package domain

import "time"

// RefreshStats holds statistics about one refresh cycle.
type RefreshStats struct {
	Tracked            int
	Streams            int
	Profiles           int
	FollowersRefreshed int
	FollowersDeferred  int
	Published          int
	Purged             int64
	Errors             int
	Duration           time.Duration
}
