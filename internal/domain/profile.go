package domain

import "time"

const (
	BroadcasterPartner   = "partner"
	BroadcasterAffiliate = "affiliate"

	// BroadcasterVerified is a query-only pseudo tier matching partners and
	// affiliates alike. It is never stored.
	BroadcasterVerified = "verified"
)

// StreamerProfile carries per-broadcaster data merged field by field: nil
// fields leave the stored value untouched, so partial updates (a follower
// refresh that knows nothing about display names, say) never clobber data
// written earlier.
type StreamerProfile struct {
	UserID            string
	DisplayName       *string
	BroadcasterType   *string
	FollowerCount     *int64
	FollowerExpiresAt *time.Time
	UpdatedAt         time.Time
}
