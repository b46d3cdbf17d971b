package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"streamwatch/internal/domain"
)

// UpsertStreams replaces the live set of one game in a single transaction:
// live rows absent from streams flip to offline with an end time, present
// ones are inserted or refreshed back to live. An empty slice ends every
// live stream of the game.
func (s *Store) UpsertStreams(ctx context.Context, gameID string, streams []domain.Stream) error {
	now := time.Now()

	return s.withTx(ctx, func(ctx context.Context) error {
		if len(streams) == 0 {
			_, err := s.ex(ctx).ExecContext(ctx,
				"UPDATE streams SET is_live = FALSE, ended_at = $1 WHERE game_id = $2 AND is_live",
				now, gameID,
			)
			return err
		}

		ids := make([]string, 0, len(streams))
		for _, st := range streams {
			ids = append(ids, st.ID)
		}

		_, err := s.ex(ctx).ExecContext(ctx,
			"UPDATE streams SET is_live = FALSE, ended_at = $1 WHERE game_id = $2 AND is_live AND NOT (id = ANY($3))",
			now, gameID, pq.Array(ids),
		)
		if err != nil {
			return err
		}

		var sb strings.Builder
		sb.WriteString(`INSERT INTO streams (
			id, game_id, user_id, user_name, title, viewer_count,
			started_at, language, thumbnail_url, is_live, last_seen_at, ended_at
		) VALUES `)
		valueArgs := make([]interface{}, 0, len(streams)*8+2)
		valueArgs = append(valueArgs, gameID, now)

		for i, st := range streams {
			if i > 0 {
				sb.WriteString(", ")
			}
			base := i*8 + 3
			sb.WriteString("($")
			sb.WriteString(strconv.Itoa(base))
			sb.WriteString(", $1, $")
			sb.WriteString(strconv.Itoa(base + 1))
			sb.WriteString(", $")
			sb.WriteString(strconv.Itoa(base + 2))
			sb.WriteString(", $")
			sb.WriteString(strconv.Itoa(base + 3))
			sb.WriteString(", $")
			sb.WriteString(strconv.Itoa(base + 4))
			sb.WriteString(", $")
			sb.WriteString(strconv.Itoa(base + 5))
			sb.WriteString(", $")
			sb.WriteString(strconv.Itoa(base + 6))
			sb.WriteString(", $")
			sb.WriteString(strconv.Itoa(base + 7))
			sb.WriteString(", TRUE, $2, NULL)")
			valueArgs = append(valueArgs,
				st.ID, st.UserID, st.UserName, st.Title,
				st.ViewerCount, st.StartedAt, st.Language, st.ThumbnailURL,
			)
		}
		sb.WriteString(`
			ON CONFLICT (id) DO UPDATE SET
				game_id = EXCLUDED.game_id,
				user_id = EXCLUDED.user_id,
				user_name = EXCLUDED.user_name,
				title = EXCLUDED.title,
				viewer_count = EXCLUDED.viewer_count,
				started_at = EXCLUDED.started_at,
				language = EXCLUDED.language,
				thumbnail_url = EXCLUDED.thumbnail_url,
				is_live = TRUE,
				last_seen_at = EXCLUDED.last_seen_at,
				ended_at = NULL`)

		_, err = s.ex(ctx).ExecContext(ctx, sb.String(), valueArgs...)
		return err
	})
}

// PurgeExpired deletes streams not seen within the retention window and
// returns how many rows went away.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-domain.RetentionTTL)

	res, err := s.ex(ctx).ExecContext(ctx, "DELETE FROM streams WHERE last_seen_at < $1", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type liveStreamRow struct {
	ID              string    `db:"id"`
	GameID          string    `db:"game_id"`
	UserID          string    `db:"user_id"`
	UserName        string    `db:"user_name"`
	Title           string    `db:"title"`
	ViewerCount     int       `db:"viewer_count"`
	StartedAt       time.Time `db:"started_at"`
	Language        string    `db:"language"`
	ThumbnailURL    string    `db:"thumbnail_url"`
	BroadcasterType string    `db:"broadcaster_type"`
	FollowerCount   *int64    `db:"follower_count"`
}

// QueryStreams returns one listing per requested game in request order, live
// streams only, viewer count descending. Requested ids without a catalog row
// are omitted; games with no matching stream get an empty listing.
func (s *Store) QueryStreams(ctx context.Context, q domain.StreamQuery) ([]domain.GameStreams, error) {
	ids := uniqueIDs(q.GameIDs)
	if len(ids) == 0 {
		return []domain.GameStreams{}, nil
	}

	conds := []string{"s.game_id = ANY($1)", "s.is_live"}
	args := []interface{}{pq.Array(ids)}

	switch q.BroadcasterType {
	case domain.BroadcasterPartner, domain.BroadcasterAffiliate:
		args = append(args, q.BroadcasterType)
		conds = append(conds, "COALESCE(p.broadcaster_type, '') = $"+strconv.Itoa(len(args)))
	case domain.BroadcasterVerified:
		conds = append(conds, "COALESCE(p.broadcaster_type, '') IN ('partner', 'affiliate')")
	}

	if q.MinViewers != nil {
		args = append(args, *q.MinViewers)
		conds = append(conds, "s.viewer_count >= $"+strconv.Itoa(len(args)))
	}
	if q.MaxViewers != nil {
		args = append(args, *q.MaxViewers)
		conds = append(conds, "s.viewer_count <= $"+strconv.Itoa(len(args)))
	}
	if q.MinFollowers != nil {
		args = append(args, *q.MinFollowers)
		conds = append(conds, "(p.follower_count IS NOT NULL AND p.follower_count >= $"+strconv.Itoa(len(args))+")")
	}
	if q.MaxFollowers != nil {
		args = append(args, *q.MaxFollowers)
		conds = append(conds, "(p.follower_count IS NOT NULL AND p.follower_count <= $"+strconv.Itoa(len(args))+")")
	}
	if len(q.IgnoredUserIDs) > 0 {
		args = append(args, pq.Array(q.IgnoredUserIDs))
		conds = append(conds, "NOT (s.user_id = ANY($"+strconv.Itoa(len(args))+"))")
	}

	query := `
		SELECT
			s.id, s.game_id, s.user_id, s.user_name, s.title, s.viewer_count,
			s.started_at, s.language, s.thumbnail_url,
			COALESCE(p.broadcaster_type, '') AS broadcaster_type,
			p.follower_count
		FROM streams s
		LEFT JOIN streamer_profiles p ON p.user_id = s.user_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY s.viewer_count DESC, s.id`

	var rows []liveStreamRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	byGame := make(map[string][]domain.LiveStream, len(ids))
	for _, r := range rows {
		byGame[r.GameID] = append(byGame[r.GameID], domain.LiveStream{
			ID:              r.ID,
			UserID:          r.UserID,
			UserName:        r.UserName,
			Title:           r.Title,
			ViewerCount:     r.ViewerCount,
			StartedAt:       r.StartedAt,
			Language:        r.Language,
			ThumbnailURL:    r.ThumbnailURL,
			BroadcasterType: r.BroadcasterType,
			FollowerCount:   r.FollowerCount,
		})
	}

	var games []domain.Game
	err := s.db.SelectContext(ctx, &games,
		"SELECT id, name, box_art_url, updated_at FROM games WHERE id = ANY($1)",
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	gamesByID := make(map[string]domain.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	out := make([]domain.GameStreams, 0, len(ids))
	for _, id := range ids {
		game, ok := gamesByID[id]
		if !ok {
			continue
		}
		streams := byGame[id]
		if streams == nil {
			streams = make([]domain.LiveStream, 0)
		}
		out = append(out, domain.GameStreams{Game: game, Streams: streams})
	}

	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
