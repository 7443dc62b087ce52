package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"recipe-hub/domain"
	"recipe-hub/internal/api/handlers"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/api/routes"
	"recipe-hub/internal/middleware"
	"recipe-hub/internal/utils"
	"recipe-hub/internal/utils/mailing"
	"recipe-hub/internal/utils/storage"
	"recipe-hub/pkg/extract"
	"recipe-hub/pkg/jwt"
	"recipe-hub/pkg/recipe"
	"recipe-hub/pkg/user"
)

const bodyLimit = 8 << 20

// NewApp wires repositories, services and handlers onto a fiber app. The
// returned cleanup releases connections opened here (the redis cache).
func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, func(), error) {
	utils.InitValidator()
	validator := utils.Validate

	app := fiber.New(fiber.Config{
		AppName:      "recipe-hub",
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	if sentry.CurrentHub().Client() != nil {
		app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	}
	app.Use(recover.New())
	app.Use(requestid.New())

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("create logs directory: %w", err)
	}
	file, err := os.OpenFile("./logs/app.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("open access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ORIGINS"))
	app.Use(middlewares.RateLimiter(20, 1*time.Second))

	// utils
	s3, err := storage.NewAwsS3(ctx, storage.S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfig("AWS_S3_REGION"),
		Endpoint:  utils.GetConfig("AWS_S3_ENDPOINT"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	})
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	cache, closeCache, err := extract.NewRedisCache(ctx, utils.GetConfig("REDIS_ADDR"), utils.GetConfig("REDIS_PASSWORD"))
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, extraction results will not be cached")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService, validator)
	recipeService := recipe.NewRecipeService(recipeRepository, userRepository, s3, mailer, validator, utils.GetConfig("APP_URL"))

	extractCfg := extract.LoadConfig()
	extractService := extract.NewExtractService(
		extract.NewCompleter(extractCfg),
		extract.NewPageFetcher(),
		extract.NewYouTubeClient(extractCfg.YouTubeAPIKey, extractCfg.YouTubeBaseURL),
		cache,
		validator,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	recipeFormHandler := handlers.NewRecipeFormHandler(recipeService)
	extractHandler := handlers.NewExtractHandler(extractService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		RecipeFormHandler: recipeFormHandler,
		ExtractHandler:    extractHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()

	cleanup := func() {
		if err := closeCache(); err != nil {
			log.Error().Err(err).Msg("error closing redis client")
		}
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing access log")
		}
	}
	return app, cleanup, nil
}

// customErrorHandler catches errors no handler turned into a response,
// such as unknown routes and body limit violations. 5xx details stay in
// the log.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := domain.MessageInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return presenters.ErrorResponse(c, code, message, err)
}
