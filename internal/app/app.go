package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/db"
	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	"github.com/yungbote/cleanarch-backend/internal/data/seed"
	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	"github.com/yungbote/cleanarch-backend/internal/events"
	apphttp "github.com/yungbote/cleanarch-backend/internal/http"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
	"github.com/yungbote/cleanarch-backend/internal/realtime/bus"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

// Core is what every command needs: configuration, logging and the database.
type Core struct {
	Log     *logger.Logger
	Cfg     Config
	DB      *gorm.DB
	Metrics *observability.Metrics
}

func NewCore() (*Core, error) {
	LoadDotEnv()
	cfg := LoadConfig(nil)
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	cfg = LoadConfig(log)

	theDB, err := db.Open(log, cfg.DBDriver, cfg.SQLitePath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	return &Core{Log: log, Cfg: cfg, DB: theDB, Metrics: observability.Init(log)}, nil
}

// Migrate applies pending migrations and returns their ids.
func (c *Core) Migrate() ([]string, error) {
	applied, err := db.Migrate(c.DB)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if len(applied) > 0 {
		c.Log.Info("migrations applied", "ids", applied)
	}
	return applied, nil
}

func (c *Core) AppliedMigrations() ([]string, error) { return db.AppliedMigrations(c.DB) }
func (c *Core) PendingMigrations() ([]string, error) { return db.PendingMigrations(c.DB) }

func (c *Core) Seeder() *seed.Seeder {
	return seed.New(c.DB, c.Log, services.NewPasswordHasher(c.Cfg.BcryptCost))
}

func (c *Core) Close() {
	if c == nil {
		return
	}
	if sqlDB, err := c.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	c.Log.Sync()
}

type App struct {
	*Core

	Repos    repos.Set
	UoW      *uow.UnitOfWork
	Hub      *realtime.Hub
	Bus      bus.Bus
	NATS     *events.NATSPublisher
	Mediator *mediator.Mediator
	Server   *apphttp.Server

	shutdownOTel func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	core, err := NewCore()
	if err != nil {
		return nil, err
	}
	a := &App{Core: core}
	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	log, cfg := a.Log, a.Cfg

	a.shutdownOTel = observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.ServiceVersion,
	})

	if cfg.AutoMigrate {
		if _, err := a.Migrate(); err != nil {
			return err
		}
	}

	a.Repos = repos.NewSet(a.DB, log)
	a.UoW = uow.New(uow.Deps{DB: a.DB, Log: log, Hooks: uow.NewObservabilityHooks(a.Metrics)})

	a.Hub = realtime.NewHub(log, a.Metrics)
	var emitter services.RealtimeEmitter = &services.HubEmitter{Hub: a.Hub}
	if cfg.RedisAddr != "" {
		b, err := bus.NewRedisBus(log, bus.Config{Addr: cfg.RedisAddr, Channel: cfg.RedisChannel})
		if err != nil {
			return fmt.Errorf("init redis realtime bus: %w", err)
		}
		a.Bus = b
		emitter = &services.BusEmitter{Bus: b, Log: log}
	}
	notifier := services.NewNotifier(emitter)

	tokens, err := services.NewTokenService(log, services.TokenConfig{
		SecretKey: cfg.JWTSecretKey,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		AccessTTL: cfg.AccessTokenTTL,
	})
	if err != nil {
		return fmt.Errorf("init token service: %w", err)
	}
	passwords := services.NewPasswordHasher(cfg.BcryptCost)

	dispatcher := events.NewDispatcher(log, a.Metrics, events.NewNotificationHandler(a.Repos.Notifications, notifier))
	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(log, cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			// Integration events are optional; local notifications still flow.
			log.Warn("NATS publisher unavailable", "error", err)
		} else {
			a.NATS = pub
			dispatcher.Register(pub)
		}
	}
	a.UoW.SetDispatcher(dispatcher)

	seeder := seed.New(a.DB, log, passwords)
	if cfg.SeedOnStart {
		if _, err := seeder.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	a.Mediator = wireMediator(log, a.Metrics, featureDeps{
		log:       log,
		repos:     a.Repos,
		uow:       a.UoW,
		notifier:  notifier,
		tokens:    tokens,
		passwords: passwords,
		db:        a.DB,
		seeder:    seeder,
		env:       cfg.Env,
	})

	handlers := wireHandlers(log, a.Mediator, a.Hub, notifier, a.DB, cfg)
	a.Server = apphttp.NewServer(wireRouter(log, a.Metrics, cfg, handlers, tokens))
	return nil
}

// Run starts background workers and serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	defer cancel()

	a.Metrics.StartSLOEvaluator(ctx, a.Log)
	if a.Bus != nil {
		if err := a.Bus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			return fmt.Errorf("start realtime forwarder: %w", err)
		}
	}
	return a.Server.Run(ctx, a.Cfg.Addr())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.NATS != nil {
		_ = a.NATS.Close()
	}
	if a.shutdownOTel != nil {
		if err := a.shutdownOTel(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Core.Close()
}
