package app

import (
	"context"
	"fmt"
	"net/http"

	"church-registry-go/internal/auth"
	"church-registry-go/internal/config"
	"church-registry-go/internal/db"
	admindomain "church-registry-go/internal/domain/admin"
	memberdomain "church-registry-go/internal/domain/member"
	unitdomain "church-registry-go/internal/domain/unit"
	adminrepo "church-registry-go/internal/repository/postgres/admin"
	memberrepo "church-registry-go/internal/repository/postgres/member"
	unitrepo "church-registry-go/internal/repository/postgres/unit"
	"church-registry-go/internal/transport/httpserver"
	"church-registry-go/internal/transport/httpserver/handler"
	registrymw "church-registry-go/internal/transport/httpserver/middleware"
	"church-registry-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	tokens := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	admins := admindomain.NewService(adminrepo.NewPostgres(dbConn), tokens)
	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	units := unitdomain.NewService(unitrepo.NewPostgres(dbConn))

	if _, err := admins.EnsureSeedAdmin(context.Background(), cfg.Seed.AdminName, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	handlers := handler.New(admins, members, units, log)
	jwtAuth := registrymw.NewJWTAuth(tokens, admins, log)
	metrics := registrymw.NewMetrics()

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, jwtAuth, metrics)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
