package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/akreem/alliance/internal/adapters/alliance"
	server "github.com/akreem/alliance/internal/adapters/http_server"
	"github.com/akreem/alliance/internal/adapters/observability"
	redisad "github.com/akreem/alliance/internal/adapters/redis"
	"github.com/akreem/alliance/internal/app"
	"github.com/akreem/alliance/internal/domain"
	"github.com/akreem/alliance/internal/shared"
	mysqlrepo "github.com/akreem/alliance/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// upstream client
	client, err := alliance.New(cfg.APIBaseURL, cfg.UpstreamRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upstream client")
	}

	// snapshot store is optional; without it reads degrade to empty
	var snap domain.SnapshotStore
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("snapshot database connection ok")
		snap = mysqlrepo.New(db)
	}

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := redisad.NewSessions(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionTTL)

	q := app.NewQueryService(client, snap, cache, cfg.CacheTTL, cfg.DemoFallback)
	fav := app.NewFavoriteService(client, cache)
	auth := app.NewAuthService(client, sessions)
	admin := app.NewAdminService(client, cache)
	contact := app.NewContactService(client)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, F: fav, Auth: auth, Admin: admin, Contact: contact})

	log.Info().Str("addr", cfg.HTTPAddr).Str("upstream", cfg.APIBaseURL).Msg("gateway listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
