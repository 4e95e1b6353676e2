package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
)

const (
	defaultZoomAuthURL = "https://zoom.us/oauth/token"
	defaultZoomAPIURL  = "https://api.zoom.us/v2"

	// Tokens are refreshed slightly before Zoom's reported expiry.
	tokenExpirySlack = 5 * time.Minute
)

// ZoomConfig carries server-to-server OAuth credentials plus the path used
// to cache the access token between runs.
type ZoomConfig struct {
	AccountID     string
	ClientID      string
	ClientSecret  string
	TokenCacheDir string
	AuthURL       string
	APIURL        string
}

type cachedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type meetingResponse struct {
	JoinURL  string `json:"join_url"`
	StartURL string `json:"start_url"`
	ID       int64  `json:"id"`
}

// Meeting creates an instant Zoom meeting and responds with the join link.
type Meeting struct {
	config     ZoomConfig
	httpClient *http.Client
	now        func() time.Time
	logger     *zap.Logger
}

var _ repositories.Handler = (*Meeting)(nil)

// NewMeeting creates the meeting handler.
func NewMeeting(config ZoomConfig, logger *zap.Logger) *Meeting {
	if config.AuthURL == "" {
		config.AuthURL = defaultZoomAuthURL
	}
	if config.APIURL == "" {
		config.APIURL = defaultZoomAPIURL
	}
	if config.TokenCacheDir == "" {
		config.TokenCacheDir = os.TempDir()
	}
	return &Meeting{
		config:     config,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		now:        time.Now,
		logger:     logger,
	}
}

func (h *Meeting) Category() entities.IntentCategory { return entities.CategoryMeeting }

func (h *Meeting) Handle(ctx context.Context, utterance string) (*string, error) {
	token, err := h.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("meeting: obtain token: %w", err)
	}

	meeting, err := h.createMeeting(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("meeting: create: %w", err)
	}

	h.logger.Info("Meeting created", zap.Int64("id", meeting.ID))
	response := fmt.Sprintf("Your Zoom meeting is ready. The join link is %s", meeting.JoinURL)
	return &response, nil
}

func (h *Meeting) tokenCachePath() string {
	return fmt.Sprintf("%s/aero_zoom_token.json", h.config.TokenCacheDir)
}

// accessToken returns a cached token when still fresh, otherwise fetches a
// new one and caches it.
func (h *Meeting) accessToken(ctx context.Context) (string, error) {
	if data, err := os.ReadFile(h.tokenCachePath()); err == nil {
		var cached cachedToken
		if err := json.Unmarshal(data, &cached); err == nil &&
			h.now().Before(cached.ExpiresAt.Add(-tokenExpirySlack)) {
			return cached.AccessToken, nil
		}
	}

	endpoint := fmt.Sprintf("%s?%s", h.config.AuthURL, url.Values{
		"grant_type": {"account_credentials"},
		"account_id": {h.config.AccountID},
	}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(h.config.ClientID, h.config.ClientSecret)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("zoom auth returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	cached := cachedToken{
		AccessToken: parsed.AccessToken,
		ExpiresAt:   h.now().Add(time.Duration(parsed.ExpiresIn) * time.Second),
	}
	if data, err := json.Marshal(cached); err == nil {
		if err := os.WriteFile(h.tokenCachePath(), data, 0o600); err != nil {
			h.logger.Warn("Could not cache zoom token", zap.Error(err))
		}
	}
	return parsed.AccessToken, nil
}

func (h *Meeting) createMeeting(ctx context.Context, token string) (*meetingResponse, error) {
	payload := map[string]interface{}{
		"topic": "AERO instant meeting",
		"type":  1, // instant meeting
		"settings": map[string]interface{}{
			"join_before_host": true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		h.config.APIURL+"/users/me/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("zoom returned status %d: %s", resp.StatusCode, string(errorBody))
	}

	var parsed meetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
