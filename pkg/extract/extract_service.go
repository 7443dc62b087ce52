package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/utils"
)

const cacheTTL = 24 * time.Hour

type (
	ExtractService interface {
		ExtractRecipe(ctx context.Context, req domain.ExtractRecipeRequest) (domain.ExtractedRecipe, error)
	}

	extractService struct {
		completer Completer
		pages     PageFetcher
		videos    VideoSource
		cache     Cache
		validator *validator.Validate
	}
)

func NewExtractService(completer Completer, pages PageFetcher, videos VideoSource, cache Cache, validator *validator.Validate) ExtractService {
	if cache == nil {
		cache = noopCache{}
	}
	return &extractService{
		completer: completer,
		pages:     pages,
		videos:    videos,
		cache:     cache,
		validator: validator,
	}
}

func (s *extractService) ExtractRecipe(ctx context.Context, req domain.ExtractRecipeRequest) (domain.ExtractedRecipe, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return domain.ExtractedRecipe{}, err
	}

	key := cacheKey(req.Type, req.URL)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	var (
		prompt     string
		sourceType string
	)
	switch req.Type {
	case domain.ExtractTypeYouTube:
		id, ok := ParseVideoID(req.URL)
		if !ok {
			return domain.ExtractedRecipe{}, domain.ErrUnsupportedSource
		}
		video, err := s.videos.Video(ctx, id)
		if err != nil {
			return domain.ExtractedRecipe{}, s.wrap(err, req)
		}
		prompt = fmt.Sprintf("Extract the recipe from this YouTube video.\n\nTitle: %s\n\nDescription:\n%s",
			video.Title, truncateRunes(video.Description, maxPromptRunes))
		sourceType = entities.SourceYouTube
	default:
		text, err := s.pages.FetchText(ctx, req.URL)
		if err != nil {
			return domain.ExtractedRecipe{}, s.wrap(err, req)
		}
		if text == "" {
			return domain.ExtractedRecipe{}, fmt.Errorf("%w: page has no text", domain.ErrExtractionFailed)
		}
		prompt = "Extract the recipe from this web page.\n\n" + text
		sourceType = entities.SourceBlog
	}

	completion, err := s.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return domain.ExtractedRecipe{}, s.wrap(err, req)
	}

	recipe, err := ParseCompletion(completion)
	if err != nil {
		log.Warn().Err(err).Str("url", req.URL).Msg("unusable extraction completion")
		return domain.ExtractedRecipe{}, err
	}
	recipe.Source = req.URL
	recipe.SourceType = sourceType

	s.toCache(ctx, key, recipe)
	return recipe, nil
}

// wrap keeps the typed errors callers map to statuses and folds everything
// else into ErrExtractionFailed.
func (s *extractService) wrap(err error, req domain.ExtractRecipeRequest) error {
	switch {
	case errors.Is(err, domain.ErrVideoNotFound),
		errors.Is(err, domain.ErrAIProviderDisabled),
		errors.Is(err, domain.ErrUnsupportedSource),
		errors.Is(err, context.Canceled):
		return err
	}
	log.Error().Err(err).Str("url", req.URL).Str("type", req.Type).Msg("recipe extraction failed")
	return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
}

func (s *extractService) fromCache(ctx context.Context, key string) (domain.ExtractedRecipe, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("extraction cache read failed")
		return domain.ExtractedRecipe{}, false
	}
	if !ok {
		return domain.ExtractedRecipe{}, false
	}

	var recipe domain.ExtractedRecipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		log.Warn().Err(err).Msg("extraction cache entry is corrupt")
		return domain.ExtractedRecipe{}, false
	}
	return recipe, true
}

func (s *extractService) toCache(ctx context.Context, key string, recipe domain.ExtractedRecipe) {
	data, err := json.Marshal(recipe)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("extraction cache write failed")
	}
}
