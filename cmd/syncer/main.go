package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/akreem/alliance/internal/adapters/alliance"
	"github.com/akreem/alliance/internal/adapters/observability"
	redisad "github.com/akreem/alliance/internal/adapters/redis"
	"github.com/akreem/alliance/internal/app"
	"github.com/akreem/alliance/internal/shared"
	mysqlrepo "github.com/akreem/alliance/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required for the syncer")
	}

	log.Info().
		Str("upstream", cfg.APIBaseURL).
		Int("workers", cfg.SyncWorkers).
		Msg("syncer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	client, err := alliance.New(cfg.APIBaseURL, cfg.UpstreamRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upstream client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewSyncService(client, mysqlrepo.New(db), cache)

	ids, err := svc.ListIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing upstream ids failed")
	}
	log.Info().Int("count", len(ids)).Msg("listings discovered")

	sem := semaphore.NewWeighted(int64(cfg.SyncWorkers))
	var wg sync.WaitGroup

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(listingID string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := svc.SyncProperty(ctx, listingID); err != nil {
				log.Warn().Str("id", listingID).Err(err).Msg("sync failed")
				return
			}
			log.Info().Str("id", listingID).Msg("sync ok")
		}(id)
	}

	wg.Wait()

	if n, err := svc.SyncAgents(ctx); err != nil {
		log.Warn().Err(err).Msg("agent sync failed")
	} else {
		log.Info().Int("count", n).Msg("agents synced")
	}

	log.Info().Msg("sync completed")
}
