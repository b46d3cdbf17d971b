package twitch

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type gamesResponse struct {
	Data []gamePayload `json:"data"`
}

type gamePayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BoxArtURL string `json:"box_art_url"`
}

type streamsResponse struct {
	Data       []streamPayload `json:"data"`
	Pagination pagination      `json:"pagination"`
}

type pagination struct {
	Cursor string `json:"cursor"`
}

type streamPayload struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	GameID       string `json:"game_id"`
	Title        string `json:"title"`
	ViewerCount  int    `json:"viewer_count"`
	StartedAt    string `json:"started_at"`
	Language     string `json:"language"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type usersResponse struct {
	Data []userPayload `json:"data"`
}

type userPayload struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	BroadcasterType string `json:"broadcaster_type"`
}

type followersResponse struct {
	Total int64 `json:"total"`
}
