package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/gamedayhq/gameday/external/espn"
	"github.com/gamedayhq/gameday/external/webhook"
	"github.com/gamedayhq/gameday/internal/config"
	"github.com/gamedayhq/gameday/internal/domain/challenge"
	"github.com/gamedayhq/gameday/internal/infrastructure/repository/memory"
	"github.com/gamedayhq/gameday/internal/infrastructure/repository/postgres"
	redisrepo "github.com/gamedayhq/gameday/internal/infrastructure/repository/redis"
	"github.com/gamedayhq/gameday/internal/interfaces/httpapi"
	"github.com/gamedayhq/gameday/internal/platform/logging"
	"github.com/gamedayhq/gameday/internal/usecase"
)

// Services bundles the use-case layer so main can reach it directly, e.g. for
// the warm-on-start pass that runs outside any HTTP request.
type Services struct {
	Games      *usecase.GameService
	Teams      *usecase.TeamService
	Players    *usecase.PlayerService
	Challenges *usecase.ChallengeService
	Profiles   *usecase.ProfileService
}

// NewHTTPServer wires the configured store backend, the ESPN client and the
// HTTP layer into a ready-to-listen server. The returned cleanup closes
// whatever connections the chosen backend opened; call it after shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, edgeLogger *slog.Logger) (*http.Server, *Services, func() error, error) {
	votes, profiles, settings, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	espnClient := espn.NewClient(espn.ClientConfig{
		SiteBaseURL: cfg.ESPNSiteBaseURL,
		WebBaseURL:  cfg.ESPNWebBaseURL,
		Timeout:     cfg.ESPNTimeout,
		MaxRetries:  cfg.ESPNMaxRetries,
		Logger:      logger,
		Breaker:     cfg.ESPNBreaker,
	})

	gameSvc := usecase.NewGameService(espnClient, logger)
	teamSvc := usecase.NewTeamService(espnClient, logger)
	playerSvc := usecase.NewPlayerService(espnClient, logger)
	challengeSvc := usecase.NewChallengeService(gameSvc, votes, profiles, logger)
	profileSvc := usecase.NewProfileService(profiles, settings)

	var publisher *webhook.Publisher
	if cfg.WebhookEnabled {
		publisher = webhook.NewPublisher(webhook.PublisherConfig{
			TargetURL: cfg.WebhookURL,
			Token:     cfg.WebhookToken,
			Timeout:   cfg.WebhookTimeout,
			Breaker:   cfg.WebhookBreaker,
		}, logger)
	}

	handler := httpapi.NewHandler(gameSvc, teamSvc, playerSvc, challengeSvc, profileSvc, publisher, edgeLogger)
	router := httpapi.NewRouter(handler, edgeLogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	services := &Services{
		Games:      gameSvc,
		Teams:      teamSvc,
		Players:    playerSvc,
		Challenges: challengeSvc,
		Profiles:   profileSvc,
	}

	return server, services, cleanup, nil
}

func buildStores(cfg config.Config, logger *logging.Logger) (challenge.VoteRepository, challenge.ProfileRepository, challenge.SettingsRepository, func() error, error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		logger.Info("store backend ready", "backend", cfg.StoreBackend, "db", dbNameFromURL(cfg.DBURL))
		return postgres.NewVoteRepository(db),
			postgres.NewProfileRepository(db),
			postgres.NewSettingsRepository(db),
			db.Close,
			nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		logger.Info("store backend ready", "backend", cfg.StoreBackend, "addr", cfg.RedisAddr)
		return redisrepo.NewVoteRepository(client),
			redisrepo.NewProfileRepository(client),
			redisrepo.NewSettingsRepository(client),
			client.Close,
			nil

	default:
		logger.Info("store backend ready", "backend", config.StoreMemory)
		return memory.NewVoteRepository(),
			memory.NewProfileRepository(),
			memory.NewSettingsRepository(),
			func() error { return nil },
			nil
	}
}
