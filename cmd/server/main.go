package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"procurement-service/config"
	httpctrl "procurement-service/internal/controllers/http"
	"procurement-service/internal/infra"
	"procurement-service/internal/infra/auth"
	"procurement-service/internal/infra/cache"
	"procurement-service/internal/infra/database"
	"procurement-service/internal/infra/discovery"
	logs "procurement-service/internal/infra/log"
	rabbit "procurement-service/internal/infra/rabbitmq"
	"procurement-service/internal/policy"
	"procurement-service/internal/repository/gormstore"
	"procurement-service/internal/services"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectDelivery(),
		fx.Invoke(
			seedAdmin,
			func(*http.Server) {},
			registerConsul,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		newDatabase,
		newCache,
		newPublisher,
		newPasswordHasher,
		newTokenService,
		newAuthorizer,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		gormstore.NewUserRepository,
		gormstore.NewProductRepository,
		gormstore.NewOrderRepository,
		gormstore.NewReportRepository,
		gormstore.NewTransactionManager,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		services.NewEvents,
		services.NewUserService,
		services.NewCatalogService,
		services.NewOrderService,
		services.NewReportService,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		httpctrl.NewHandler,
		newHTTPServer,
	)
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return database.Migrate(ctx, db, logger, database.Migrations)
		},
		OnStop: func(context.Context) error {
			return database.Close(db)
		},
	})
	return db, nil
}

// newCache returns a nil Cache when redis is not configured; the catalog
// then always reads from the store.
func newCache(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (infra.Cache, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("redis not configured, catalog cache disabled")
		return nil, nil
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	c := cache.NewRedisCache(client, cfg.Redis.TTL)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return c.Close() },
	})
	return c, nil
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (rabbit.PublisherInterface, error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Info("rabbitmq not configured, events are dropped")
		return rabbit.NopPublisher{}, nil
	}

	p, err := rabbit.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return p.Close() },
	})
	return p, nil
}

func newPasswordHasher(cfg *config.Config) infra.PasswordHasher {
	return auth.NewBcryptHasher(cfg.Auth.BcryptCost)
}

func newTokenService(cfg *config.Config) (infra.TokenService, error) {
	return auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Env.ServiceName)
}

func newAuthorizer(cfg *config.Config, logger *slog.Logger) policy.Authorizer {
	if !cfg.Auth.Enforce {
		logger.Warn("authorization disabled, every caller may perform every action")
		return policy.AllowAll{}
	}
	return policy.NewRoleAuthorizer()
}

type serverParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Handler   *httpctrl.Handler
	Tokens    infra.TokenService
	Events    *services.Events
}

func newHTTPServer(p serverParams) *http.Server {
	cfg := p.Config
	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.HTTP.Port)),
		Handler:           httpctrl.NewRouter(p.Handler, p.Tokens, p.Logger, cfg.Env.Debug),
		ReadTimeout:       cfg.HTTP.Timeouts.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.Timeouts.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.Timeouts.WriteTimeout,
		IdleTimeout:       cfg.HTTP.Timeouts.IdleTimeout,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			p.Logger.Info("starting HTTP server", slog.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("HTTP server stopped", slog.String("error", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("shutting down HTTP server")
			err := srv.Shutdown(ctx)
			p.Events.Wait()
			return err
		},
	})
	return srv
}

func seedAdmin(lc fx.Lifecycle, cfg *config.Config, users *services.UserService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return users.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		},
	})
}

func registerConsul(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Consul.Address == "" {
		return nil
	}

	client, err := discovery.NewConsulClient(cfg.Consul.Address, logger)
	if err != nil {
		return err
	}

	svc := discovery.ServiceConfig{
		Name: cfg.Env.ServiceName,
		ID:   cfg.Consul.ServiceID,
		Port: cfg.HTTP.Port,
		Tags: cfg.Consul.Tags,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return client.Register(svc) },
		OnStop: func(context.Context) error {
			if err := client.Deregister(svc.ID); err != nil {
				logger.Warn("consul deregistration failed", slog.String("error", err.Error()))
			}
			return nil
		},
	})
	return nil
}
