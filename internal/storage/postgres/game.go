package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"streamwatch/internal/domain"
)

func (s *Store) UpsertGames(ctx context.Context, games []domain.Game) error {
	if len(games) == 0 {
		return nil
	}

	now := time.Now()

	var sb strings.Builder
	sb.WriteString("INSERT INTO games (id, name, box_art_url, updated_at) VALUES ")
	valueArgs := make([]interface{}, 0, len(games)*3+1)
	valueArgs = append(valueArgs, now)

	for i, game := range games {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i*3 + 2
		sb.WriteString("($")
		sb.WriteString(strconv.Itoa(base))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(base + 1))
		sb.WriteString(", $")
		sb.WriteString(strconv.Itoa(base + 2))
		sb.WriteString(", $1)")
		valueArgs = append(valueArgs, game.ID, game.Name, game.BoxArtURL)
	}
	sb.WriteString(`
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			box_art_url = EXCLUDED.box_art_url,
			updated_at = EXCLUDED.updated_at`)

	_, err := s.ex(ctx).ExecContext(ctx, sb.String(), valueArgs...)
	return err
}

// TouchTracked marks games as recently requested. Ids without a catalog row
// are skipped so unknown input cannot violate the foreign key.
func (s *Store) TouchTracked(ctx context.Context, gameIDs []string) error {
	if len(gameIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO tracked_games (game_id, last_requested_at)
		SELECT g.id, $2 FROM games g WHERE g.id = ANY($1)
		ON CONFLICT (game_id) DO UPDATE SET
			last_requested_at = EXCLUDED.last_requested_at`

	_, err := s.ex(ctx).ExecContext(ctx, query, pq.Array(gameIDs), time.Now())
	return err
}

// ListTrackedGames returns ids requested within the retention window, most
// recently requested first.
func (s *Store) ListTrackedGames(ctx context.Context) ([]string, error) {
	cutoff := time.Now().Add(-domain.RetentionTTL)

	query := `
		SELECT game_id FROM tracked_games
		WHERE last_requested_at >= $1
		ORDER BY last_requested_at DESC`

	var ids []string
	err := s.db.SelectContext(ctx, &ids, query, cutoff)
	return ids, err
}
