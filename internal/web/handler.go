package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"streamwatch/internal/domain"
	"streamwatch/internal/hub"
)

const searchPageSize = 20

// CatalogClient is the slice of the Twitch client the HTTP layer needs.
type CatalogClient interface {
	SearchGames(ctx context.Context, query string, first int) ([]domain.Game, error)
	GetGames(ctx context.Context, ids []string) ([]domain.Game, error)
}

// Store is the slice of the cache store the HTTP layer needs.
type Store interface {
	UpsertGames(ctx context.Context, games []domain.Game) error
	TouchTracked(ctx context.Context, gameIDs []string) error
	QueryStreams(ctx context.Context, q domain.StreamQuery) ([]domain.GameStreams, error)
}

// Scheduler exposes background-sync state for the status endpoint.
type Scheduler interface {
	State() string
	LastRun() (time.Time, *domain.RefreshStats)
}

// Subscriptions is the hub surface used by the websocket endpoint.
type Subscriptions interface {
	Subscribe(gameIDs []string) *hub.Subscription
	Unsubscribe(id string)
	Count() int
}

type Config struct {
	PollInterval time.Duration

	// UIDir optionally serves a prebuilt static bundle with an SPA fallback
	// to index.html. Empty disables the UI routes.
	UIDir string
}

// Handler serves the JSON API and the live-update websocket.
type Handler struct {
	catalog CatalogClient
	store   Store
	sched   Scheduler
	subs    Subscriptions
	logger  *slog.Logger
	cfg     Config
	mux     *http.ServeMux
}

// New wires all routes and returns the root handler.
func New(cfg Config, catalog CatalogClient, store Store, sched Scheduler, subs Subscriptions, logger *slog.Logger) *Handler {
	h := &Handler{
		catalog: catalog,
		store:   store,
		sched:   sched,
		subs:    subs,
		logger:  logger.With("component", "web"),
		cfg:     cfg,
		mux:     http.NewServeMux(),
	}

	h.mux.HandleFunc("/api/v1/search", h.search)
	h.mux.HandleFunc("/api/v1/tracked", h.track)
	h.mux.HandleFunc("/api/v1/streams", h.streams)
	h.mux.HandleFunc("/api/v1/status", h.status)
	h.mux.HandleFunc("/ws/updates", h.wsUpdates)

	if cfg.UIDir != "" {
		h.mux.HandleFunc("/", h.serveUI)
	}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// search looks up game categories by name and opportunistically caches the
// results so a follow-up track request can resolve them locally.
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonResp(w, http.StatusOK, searchResponse{Games: []gameResponse{}})
		return
	}

	games, err := h.catalog.SearchGames(r.Context(), query, searchPageSize)
	if err != nil {
		h.logger.Error("game search failed", "query", query, "error", err)
		jsonErr(w, http.StatusBadGateway, "catalog search failed")
		return
	}

	if err := h.store.UpsertGames(r.Context(), games); err != nil {
		// The caller still gets the results; only the cache misses out.
		h.logger.Error("failed to cache search results", "error", err)
	}

	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}
	jsonResp(w, http.StatusOK, searchResponse{Games: out})
}

// track registers games as currently of interest: metadata is resolved from
// the catalog, cached, and the tracked timestamp advanced so the background
// sync starts polling them.
func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := dedupeIDs(req.GameIDs)
	if len(ids) == 0 {
		jsonResp(w, http.StatusOK, trackResponse{Tracked: 0})
		return
	}

	games, err := h.catalog.GetGames(r.Context(), ids)
	if err != nil {
		h.logger.Error("failed to resolve games", "error", err)
		jsonErr(w, http.StatusBadGateway, "catalog lookup failed")
		return
	}

	if err := h.store.UpsertGames(r.Context(), games); err != nil {
		h.logger.Error("failed to store games", "error", err)
		jsonErr(w, http.StatusInternalServerError, "storage failure")
		return
	}
	if err := h.store.TouchTracked(r.Context(), ids); err != nil {
		h.logger.Error("failed to touch tracked games", "error", err)
		jsonErr(w, http.StatusInternalServerError, "storage failure")
		return
	}

	jsonResp(w, http.StatusOK, trackResponse{Tracked: len(games)})
}

// streams returns the cached live-stream listings for the requested games.
// Requested ids are touched so viewing a listing keeps it polled. Listings
// are empty, not an error, before the first sync pass covers a game.
func (h *Handler) streams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	params := r.URL.Query()
	ids := dedupeIDs(splitIDs(params.Get("game_ids")))
	if len(ids) == 0 {
		jsonResp(w, http.StatusOK, streamsResponse{Games: []gameStreamsResponse{}})
		return
	}

	if err := h.store.TouchTracked(r.Context(), ids); err != nil {
		h.logger.Error("failed to touch tracked games", "error", err)
	}

	q := domain.StreamQuery{
		GameIDs:        ids,
		MinViewers:     intParam(params.Get("min_viewers")),
		MaxViewers:     intParam(params.Get("max_viewers")),
		MinFollowers:   intParam(params.Get("min_followers")),
		MaxFollowers:   intParam(params.Get("max_followers")),
		IgnoredUserIDs: splitIDs(params.Get("ignored")),
	}
	switch status := params.Get("status"); status {
	case domain.BroadcasterPartner, domain.BroadcasterAffiliate, domain.BroadcasterVerified:
		q.BroadcasterType = status
	}

	listings, err := h.store.QueryStreams(r.Context(), q)
	if err != nil {
		h.logger.Error("stream query failed", "error", err)
		jsonErr(w, http.StatusInternalServerError, "storage failure")
		return
	}

	out := make([]gameStreamsResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toGameStreamsResponse(l))
	}
	jsonResp(w, http.StatusOK, streamsResponse{Games: out})
}

// status reports the background sync state for dashboards and probes.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lastRunAt, stats := h.sched.LastRun()

	resp := statusResponse{
		ServerTime:          time.Now().UTC().Format(time.RFC3339),
		PollIntervalSeconds: int(h.cfg.PollInterval / time.Second),
		SchedulerState:      h.sched.State(),
		Subscribers:         h.subs.Count(),
	}
	if !lastRunAt.IsZero() {
		ts := lastRunAt.UTC().Format(time.RFC3339)
		resp.LastRunAt = &ts
	}
	if stats != nil {
		resp.LastRun = &lastRunResponse{
			Tracked:  stats.Tracked,
			Streams:  stats.Streams,
			Profiles: stats.Profiles,
			Purged:   stats.Purged,
			Errors:   stats.Errors,
			Duration: stats.Duration.String(),
		}
	}
	jsonResp(w, http.StatusOK, resp)
}

// serveUI serves the static bundle, falling back to index.html for paths the
// client-side router owns.
func (h *Handler) serveUI(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.cfg.UIDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		path = filepath.Join(h.cfg.UIDir, "index.html")
	}
	http.ServeFile(w, r, path)
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupeIDs(ids []string) []string {
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

// intParam parses an optional numeric query parameter; malformed values are
// treated as unset.
func intParam(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
