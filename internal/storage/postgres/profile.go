package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"streamwatch/internal/domain"
)

// UpsertProfiles merges profiles by field: nil input fields keep whatever the
// row already holds, so a tier-only update never clobbers follower data and a
// follower-only update never clobbers the tier. updated_at always advances.
func (s *Store) UpsertProfiles(ctx context.Context, profiles []domain.StreamerProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	now := time.Now()

	var sb strings.Builder
	sb.WriteString("INSERT INTO streamer_profiles (user_id, display_name, broadcaster_type, follower_count, follower_expires_at, updated_at) VALUES ")
	valueArgs := make([]interface{}, 0, len(profiles)*5+1)
	valueArgs = append(valueArgs, now)

	for i, p := range profiles {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i*5 + 2
		sb.WriteString("($")
		sb.WriteString(strconv.Itoa(base))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(base + 1))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(base + 2))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(base + 3))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(base + 4))
		sb.WriteString(", $1)")
		valueArgs = append(valueArgs,
			p.UserID, p.DisplayName, p.BroadcasterType, p.FollowerCount, p.FollowerExpiresAt,
		)
	}
	sb.WriteString(`
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = COALESCE(EXCLUDED.display_name, streamer_profiles.display_name),
			broadcaster_type = COALESCE(EXCLUDED.broadcaster_type, streamer_profiles.broadcaster_type),
			follower_count = COALESCE(EXCLUDED.follower_count, streamer_profiles.follower_count),
			follower_expires_at = COALESCE(EXCLUDED.follower_expires_at, streamer_profiles.follower_expires_at),
			updated_at = EXCLUDED.updated_at`)

	_, err := s.ex(ctx).ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

// ProfilesNeedingFollowerRefresh returns user ids whose follower count was
// never fetched or has expired, never-fetched first, then oldest expiry.
func (s *Store) ProfilesNeedingFollowerRefresh(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT user_id FROM streamer_profiles
		WHERE follower_expires_at IS NULL OR follower_expires_at <= $1
		ORDER BY COALESCE(follower_expires_at, to_timestamp(0)) ASC, user_id
		LIMIT $2`

	var ids []string
	err := s.db.SelectContext(ctx, &ids, query, time.Now(), limit)
	return ids, err
}
