package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"recipe-hub/domain"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

type (
	Video struct {
		ID          string
		Title       string
		Description string
	}

	VideoSource interface {
		Video(ctx context.Context, id string) (Video, error)
	}

	youTubeClient struct {
		apiKey  string
		baseURL string
		client  *http.Client
	}
)

func NewYouTubeClient(apiKey, baseURL string) VideoSource {
	return &youTubeClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(withFallback(baseURL, defaultYouTubeBaseURL), "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ParseVideoID accepts watch, short-link, shorts and embed URLs.
func ParseVideoID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		switch {
		case segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
			id = segments[1]
		}
	}

	if !videoIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}

func (c *youTubeClient) Video(ctx context.Context, id string) (Video, error) {
	if c.apiKey == "" {
		return Video{}, fmt.Errorf("%w: YOUTUBE_API_KEY not set", domain.ErrAIProviderDisabled)
	}

	query := url.Values{}
	query.Set("id", id)
	query.Set("part", "snippet")
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos?"+query.Encode(), nil)
	if err != nil {
		return Video{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Video{}, fmt.Errorf("youtube: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Video{}, fmt.Errorf("youtube: unexpected status %s", resp.Status)
	}

	var payload struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Video{}, fmt.Errorf("youtube: %w", err)
	}

	if len(payload.Items) == 0 {
		return Video{}, domain.ErrVideoNotFound
	}

	item := payload.Items[0]
	return Video{
		ID:          id,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
	}, nil
}
