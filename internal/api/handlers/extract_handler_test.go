package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipe-hub/domain"
)

func TestExtractRecipe(t *testing.T) {
	req := domain.ExtractRecipeRequest{URL: "https://example.com/soup", Type: domain.ExtractTypeBlog}

	tests := []struct {
		name       string
		result     domain.ExtractedRecipe
		err        error
		wantStatus int
	}{
		{
			name:       "extracted",
			result:     domain.ExtractedRecipe{Title: "Soup", Source: req.URL, SourceType: "BLOG"},
			wantStatus: fiber.StatusOK,
		},
		{name: "provider disabled", err: domain.ErrAIProviderDisabled, wantStatus: fiber.StatusServiceUnavailable},
		{name: "unsupported url", err: domain.ErrUnsupportedSource, wantStatus: fiber.StatusBadRequest},
		{name: "upstream failure", err: fmt.Errorf("%w: 502", domain.ErrExtractionFailed), wantStatus: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockExtractService)
			h := NewExtractHandler(svc)
			app := newTestApp(testUserID, func(app *fiber.App) { app.Post("/recipes/extract", h.ExtractRecipe) })

			svc.On("ExtractRecipe", mock.Anything, req).Return(tt.result, tt.err)

			resp, env := doRequest(t, app, jsonRequest(http.MethodPost, "/recipes/extract", `{"url": "https://example.com/soup", "type": "blog"}`))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.err == nil {
				var data domain.ExtractedRecipe
				require.NoError(t, json.Unmarshal(env.Data, &data))
				assert.Equal(t, "BLOG", data.SourceType)
				return
			}
			assert.Equal(t, domain.MessageFailedExtractRecipe, env.Message)
		})
	}
}
