package domain

import "time"

// RetentionTTL bounds how long the mirror keeps data alive without fresh
// interest: tracked games older than this stop being polled, and streams not
// seen for this long are purged.
const RetentionTTL = 7 * 24 * time.Hour

type Game struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	BoxArtURL *string   `db:"box_art_url"`
	UpdatedAt time.Time `db:"updated_at"`
}
