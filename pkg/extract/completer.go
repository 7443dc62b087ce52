package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"recipe-hub/domain"
	"recipe-hub/internal/utils"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultGeminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

	completionTemperature = 0.1
)

type (
	// Completer sends one system + user prompt pair to a hosted language
	// model and returns the raw text of its answer.
	Completer interface {
		Complete(ctx context.Context, system string, user string) (string, error)
	}

	Config struct {
		Provider       string
		OpenAIAPIKey   string
		OpenAIModel    string
		OpenAIBaseURL  string
		GeminiAPIKey   string
		GeminiModel    string
		GeminiBaseURL  string
		YouTubeAPIKey  string
		YouTubeBaseURL string
	}

	openAICompleter struct {
		apiKey  string
		model   string
		baseURL string
		client  *http.Client
	}

	geminiCompleter struct {
		apiKey  string
		model   string
		baseURL string
		client  *http.Client
	}

	disabledCompleter struct{}
)

func LoadConfig() Config {
	return Config{
		Provider:       strings.ToLower(utils.GetConfig("AI_PROVIDER")),
		OpenAIAPIKey:   utils.GetConfig("OPENAI_API_KEY"),
		OpenAIModel:    utils.GetConfig("OPENAI_MODEL"),
		OpenAIBaseURL:  utils.GetConfig("OPENAI_BASE_URL"),
		GeminiAPIKey:   utils.GetConfig("GEMINI_API_KEY"),
		GeminiModel:    utils.GetConfig("GEMINI_MODEL"),
		GeminiBaseURL:  defaultGeminiBaseURL,
		YouTubeAPIKey:  utils.GetConfig("YOUTUBE_API_KEY"),
		YouTubeBaseURL: defaultYouTubeBaseURL,
	}
}

// NewCompleter picks the configured provider. A provider without an API
// key yields a Completer that always fails with ErrAIProviderDisabled.
func NewCompleter(cfg Config) Completer {
	client := &http.Client{Timeout: 60 * time.Second}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Warn().Msg("GEMINI_API_KEY not set, recipe extraction is disabled")
			return disabledCompleter{}
		}
		return &geminiCompleter{
			apiKey:  cfg.GeminiAPIKey,
			model:   cfg.GeminiModel,
			baseURL: strings.TrimRight(withFallback(cfg.GeminiBaseURL, defaultGeminiBaseURL), "/"),
			client:  client,
		}
	default:
		if cfg.OpenAIAPIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY not set, recipe extraction is disabled")
			return disabledCompleter{}
		}
		return &openAICompleter{
			apiKey:  cfg.OpenAIAPIKey,
			model:   cfg.OpenAIModel,
			baseURL: strings.TrimRight(cfg.OpenAIBaseURL, "/"),
			client:  client,
		}
	}
}

func (c *openAICompleter) Complete(ctx context.Context, system string, user string) (string, error) {
	requestBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": completionTemperature,
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	err := postJSON(ctx, c.client, c.baseURL+"/chat/completions", requestBody, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}, &completion)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai: empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, system string, user string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	requestBody := map[string]interface{}{
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]interface{}{
				{"text": system},
			},
		},
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": user},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      completionTemperature,
			"responseMimeType": "application/json",
		},
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := postJSON(ctx, c.client, url, requestBody, nil, &geminiResp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty completion")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

func (disabledCompleter) Complete(context.Context, string, string) (string, error) {
	return "", domain.ErrAIProviderDisabled
}

func postJSON(ctx context.Context, client *http.Client, url string, body any, decorate func(*http.Request), out any) error {
	requestJSON, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api error: %s - %s", resp.Status, string(bodyBytes))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func withFallback(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
