package config

import (
	"context"
	"log"
	"time"

	"github.com/fediwatch/reporter/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server      string        `env:"MASTODON_SERVER,required"`
	AccessToken string        `env:"MASTODON_ACCESS_TOKEN,required"`
	Timeout     time.Duration `env:"MASTODON_TIMEOUT,default=30s"`

	CacheDir    string        `env:"CACHE_DIR,default=."`
	CachePolicy string        `env:"CACHE_POLICY,default=ttl"`
	CacheTTL    time.Duration `env:"CACHE_TTL,default=1h"`

	SentryURL  string `env:"SENTRY_URL"`
	DiscordURL string `env:"DISCORD_URL"`
}

// New loads the env file when it exists and resolves the configuration from
// the environment. A missing env file is fine, the variables may already be
// exported; missing required variables are not.
func New(ctx context.Context, envpath string) (*Config, error) {
	if envpath != "" && storage.Exists(envpath) {
		log.Default().Println("loading env from file: ", envpath)
		err := godotenv.Load(envpath)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	err := envconfig.Process(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
