package main

import (
	"expvar"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"imageproxy/internal/allowlist"
	"imageproxy/internal/env"
	"imageproxy/internal/fetcher"
	"imageproxy/internal/processor"
	"imageproxy/internal/proxy"
	"imageproxy/internal/ratelimiter"
	"imageproxy/internal/store/cache"
)

const version = "1.0.0"

func main() {
	// local development convenience, ignored when no .env exists
	_ = godotenv.Load()

	cfg := config{
		addr:           env.GetString("ADDR", ":8080"),
		allowedDomains: env.GetString("ALLOWED_DOMAINS", ""),
		maxWidth:       env.GetInt("MAX_WIDTH", 4000),
		maxHeight:      env.GetInt("MAX_HEIGHT", 4000),
		redisCfg: redisConfig{
			addr:    env.GetString("REDIS_ADDR", "localhost:6379"),
			pw:      env.GetString("REDIS_PW", ""),
			db:      env.GetInt("REDIS_DB", 0),
			enabled: env.GetBool("REDIS_ENABLED", false),
		},
		cacheTTL: time.Duration(env.GetInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
		ratelimiter: ratelimiter.Config{
			RequestPerTimeFrame: env.GetInt("RL_REQS_COUNT", 30),
			TimeFrame:           5 * time.Second,
			Enabled:             env.GetBool("RL_ENABLED", false),
		},
	}

	//Logger (Zap)
	logger := zap.Must(zap.NewProduction()).Sugar()

	defer logger.Sync() //flushes buffer, if any

	//Cache
	var rdb *redis.Client
	if cfg.redisCfg.enabled {
		rdb = cache.NewRedisClient(cfg.redisCfg.addr, cfg.redisCfg.pw, cfg.redisCfg.db)
		logger.Info("cache connection established!")

		defer rdb.Close()
	}
	cacheStore := cache.NewRedisStorage(rdb, cfg.cacheTTL)

	//Domain allow-list
	allowed := allowlist.FromEnv(cfg.allowedDomains)
	if allowed.Empty() {
		logger.Warn("ALLOWED_DOMAINS is empty, all source domains are allowed")
	}

	//Rate Limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.ratelimiter.RequestPerTimeFrame,
		cfg.ratelimiter.TimeFrame,
	)

	app := &application{
		config:       cfg,
		logger:       logger,
		allowed:      allowed,
		fetcher:      fetcher.New(),
		pipeline:     proxy.NewPipeline(processor.NewTransformer(), logger),
		cacheStorage: cacheStore,
		rateLimiter:  rateLimiter,
	}

	// Metrics
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
