package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-hub/domain"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"https://www.youtube.com/channel/UC123", "", false},
		{"https://vimeo.com/123456789", "", false},
		{"not a url", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, ok := ParseVideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestYouTubeVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "yt-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("id") == "dQw4w9WgXcQ" {
			_, _ = w.Write([]byte(`{"items":[{"id":"dQw4w9WgXcQ","snippet":{"title":"Best Ramen","description":"You need noodles."}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	client := NewYouTubeClient("yt-key", srv.URL)

	video, err := client.Video(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Best Ramen", video.Title)
	assert.Equal(t, "You need noodles.", video.Description)

	_, err = client.Video(context.Background(), "aaaaaaaaaaa")
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}

func TestYouTubeVideoWithoutKey(t *testing.T) {
	_, err := NewYouTubeClient("", "").Video(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, domain.ErrAIProviderDisabled)
}
