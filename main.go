package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var db *sql.DB
	if cfg.DBDriver != "" {
		if db, err = setupDB(ctx, cfg.DBDriver, cfg.DBDSN); err != nil {
			log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("word database")
		}
		defer db.Close()
	}

	dict, err := words.Load(ctx, words.LoadOptions{
		Cols:        cfg.Cols,
		DB:          db,
		AnswersFile: cfg.AnswersFile,
		AllowedFile: cfg.AllowedFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	dailyKey, err := cfg.DailyKey()
	if err != nil {
		log.Fatal().Err(err).Msg("daily key")
	}
	tokenKey, err := cfg.TokenKey()
	if err != nil {
		log.Fatal().Err(err).Msg("token key")
	}
	dicts := store.Dictionaries{
		Random: dict,
		Daily:  dict.WithSource(daily.Source{Key: dailyKey}),
	}

	srv := httpserver.New(httpserver.Options{
		Store:           newStore(ctx, cfg, dicts),
		Words:           dict,
		Dicts:           dicts,
		Rows:            cfg.Rows,
		Cols:            cfg.Cols,
		HelpfulKeyboard: cfg.HelpfulKeyboard,
		TokenKey:        tokenKey,
		TokenTTL:        cfg.TokenTTL,
		ClientOrigin:    cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Int("rows", cfg.Rows).Int("cols", cfg.Cols).Msg("starting wordgrid server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// setupDB opens, migrates and seeds the word database.
func setupDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := openDB(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := seedWords(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newStore uses Redis when REDIS_ADDR is set and reachable, otherwise
// sessions live in memory.
func newStore(ctx context.Context, cfg config.Config, dicts store.Dictionaries) store.Store {
	if cfg.RedisAddr == "" {
		return store.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, falling back to memory sessions")
		_ = client.Close()
		return store.NewMemoryStore()
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis session store")
	return store.NewRedisStore(client, dicts, cfg.SessionTTL)
}
