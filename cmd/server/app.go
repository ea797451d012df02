package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/api"
	"github.com/albaranes/deliverynotes-api/internal/api/handler"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
	"github.com/albaranes/deliverynotes-api/internal/core/service"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/config"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/db/memory"
	mongodb "github.com/albaranes/deliverynotes-api/internal/infrastructure/db/mongo"
	redisdb "github.com/albaranes/deliverynotes-api/internal/infrastructure/db/redis"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/mail"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/pdf"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/queue"
	"github.com/albaranes/deliverynotes-api/internal/infrastructure/storage"
)

// repositories is the store selected by DB_DRIVER.
type repositories struct {
	users         ports.UserRepository
	clients       ports.ClientRepository
	projects      ports.ProjectRepository
	deliveryNotes ports.DeliveryNoteRepository
}

// app holds the wired server and what has to be released on exit.
type app struct {
	Echo    *echo.Echo
	closers []func()
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()
	checks := map[string]handler.Check{}

	repos, err := openStore(ctx, cfg, log, a, checks)
	if err != nil {
		return nil, err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	switch {
	case errors.Is(err, redisdb.ErrDisabled):
		log.Info().Msg("REDIS_ADDR not set, upload cache disabled")
	case err != nil:
		return nil, err
	default:
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	uploader, err := newUploader(ctx, cfg, rdb, log)
	if err != nil {
		return nil, err
	}

	// Mail workers outlive the request that queued the message.
	mailCtx, stopMail := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mail.NewLogMailer(cfg.Mail.From, log), log)
	dispatcher.Start(mailCtx)
	a.closers = append(a.closers, func() {
		stopMail()
		dispatcher.Wait()
	})

	tokens := service.NewJWTIssuer(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL)

	a.Echo = api.NewRouter(api.Options{
		Log:      log,
		Tokens:   tokens,
		Accounts: repos.users,
		Checks:   checks,
		Services: api.Services{
			Auth:      service.NewAuthService(repos.users, tokens, dispatcher, log),
			Passwords: service.NewPasswordService(repos.users, tokens, log),
			Users:     service.NewUserService(repos.users, uploader, dispatcher, log),
			Clients:   service.NewClientService(repos.clients, log),
			Projects:  service.NewProjectService(repos.projects, repos.clients, log),
			DeliveryNotes: service.NewDeliveryNoteService(
				repos.deliveryNotes, repos.projects, repos.clients, repos.users,
				pdf.NewRenderer(), uploader, log,
			),
		},
	})
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, a *app, checks map[string]handler.Check) (*repositories, error) {
	if cfg.DBDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return &repositories{users: s.Users, clients: s.Clients, projects: s.Projects, deliveryNotes: s.DeliveryNotes}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
	checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	s := mongodb.NewStore(db)
	if err := s.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return &repositories{users: s.Users, clients: s.Clients, projects: s.Projects, deliveryNotes: s.DeliveryNotes}, nil
}

// newUploader selects the storage backend, bounds each call by
// UPLOAD_TIMEOUT and puts the Redis result cache in front when available.
func newUploader(ctx context.Context, cfg *config.Config, rdb *goredis.Client, log zerolog.Logger) (ports.BlobUploader, error) {
	var backend ports.BlobUploader
	switch cfg.Storage.Backend {
	case config.BackendS3:
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Region:          cfg.Storage.S3Region,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretAccessKey,
			Endpoint:        cfg.Storage.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		backend = storage.NewS3Uploader(client, cfg.Storage.S3Bucket, cfg.Storage.GatewayHost)
	case config.BackendPinata:
		backend = storage.NewPinataUploader(storage.PinataConfig{
			APIURL:      cfg.Storage.PinataAPIURL,
			JWT:         cfg.Storage.PinataJWT,
			GatewayHost: cfg.Storage.GatewayHost,
		}, &http.Client{})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	uploader := storage.WithTimeout(backend, cfg.Storage.UploadTimeout)
	if rdb != nil {
		uploader = storage.NewCachedUploader(uploader, redisdb.NewUploadCache(rdb, cfg.Redis.CacheTTL), log)
	}
	log.Info().Str("backend", cfg.Storage.Backend).Bool("cache", rdb != nil).Msg("blob storage ready")
	return uploader, nil
}
