package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr                string
	AllowOrigins        string
	MatchmakingInterval time.Duration
	LogLevel            log.Level
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Load reads flags from args. Each flag falls back to an environment
// variable looked up through getenv, then to a built in default.
func Load(args []string, getenv func(string) string) (Config, error) {
	fallback := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", fallback("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", fallback("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	interval := fs.String("matchmaking-interval", fallback("CHESS_MATCHMAKING_INTERVAL", "1s"), "how often queued players are paired")
	level := fs.String("log-level", fallback("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.Contains(*origins, "*") {
		return Config{}, errors.New("allow origins: wildcard not allowed with credentialed requests")
	}
	cfg := Config{Addr: *addr, AllowOrigins: *origins}

	d, err := time.ParseDuration(*interval)
	if err != nil {
		return Config{}, fmt.Errorf("matchmaking interval: %w", err)
	}
	if d <= 0 {
		return Config{}, fmt.Errorf("matchmaking interval must be positive, got %s", d)
	}
	cfg.MatchmakingInterval = d

	lvl, ok := levels[strings.ToLower(*level)]
	if !ok {
		return Config{}, fmt.Errorf("unknown log level %q", *level)
	}
	cfg.LogLevel = lvl

	return cfg, nil
}
