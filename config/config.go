package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP       HTTP
		Log        Log
		S3         S3
		PG         PG
		Cache      Cache
		Redis      Redis
		Gallery    Gallery
		Thumbnails Thumbnails
		Kafka      Kafka
		Swagger    Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		Region         string        `env:"S3_REGION" envDefault:"auto"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	// Backend "memory" keeps a process-local map, "redis" shares listing
	// snapshots across instances.
	Cache struct {
		Backend string        `env:"CACHE_BACKEND" envDefault:"memory"`
		TTL     time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Gallery struct {
		MaxArchiveFiles int           `env:"GALLERY_MAX_ARCHIVE_FILES" envDefault:"20"`
		FetchTimeout    time.Duration `env:"GALLERY_FETCH_TIMEOUT" envDefault:"10s"`
	}

	Thumbnails struct {
		Enabled         bool          `env:"THUMBNAILS_ENABLED" envDefault:"false"`
		MaxWidth        int           `env:"THUMBNAILS_MAX_WIDTH" envDefault:"480"`
		MaxHeight       int           `env:"THUMBNAILS_MAX_HEIGHT" envDefault:"480"`
		ProcessTimeout  time.Duration `env:"THUMBNAILS_PROCESS_TIMEOUT" envDefault:"15s"`
		CommitTimeout   time.Duration `env:"THUMBNAILS_COMMIT_TIMEOUT" envDefault:"2s"`
		ShutdownTimeout time.Duration `env:"THUMBNAILS_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS"`
		GroupID string   `env:"KAFKA_GROUP_ID" envDefault:"gallery-thumbnailer"`
		Topic   string   `env:"KAFKA_TOPIC" envDefault:"gallery.thumbnails"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
