package config

import (
	"context"
	"log"
	"time"

	"github.com/fediwatch/reporter/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// CacheConfig is the subset of the configuration the cache maintenance
// command needs. It resolves without credentials.
type CacheConfig struct {
	CacheDir    string        `env:"CACHE_DIR,default=."`
	CachePolicy string        `env:"CACHE_POLICY,default=ttl"`
	CacheTTL    time.Duration `env:"CACHE_TTL,default=1h"`
}

func NewCacheConfig(ctx context.Context, envpath string) (*CacheConfig, error) {
	if envpath != "" && storage.Exists(envpath) {
		log.Default().Println("loading env from file: ", envpath)
		err := godotenv.Load(envpath)
		if err != nil {
			return nil, err
		}
	}

	cfg := &CacheConfig{}
	err := envconfig.Process(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
