package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP listen port
	Port string `env:"PORT" envDefault:"5250"`

	// Path to the SQLite database file
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database/mercato.db"`

	// Allowed CORS origins, comma separated
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Redis address for the map response cache; empty disables caching
	RedisAddr string `env:"REDIS_ADDR"`

	// Map cache entry lifetime in seconds
	MapCacheTTL int `env:"MAP_CACHE_TTL" envDefault:"30"`

	// Ingest pipeline configuration
	Ingest struct {
		// Maximum number of batches waiting in the queue
		QueueSize int `env:"INGEST_QUEUE_SIZE" envDefault:"100"`

		// Number of concurrent batch workers
		WorkerCount int `env:"INGEST_WORKER_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"INGEST_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"INGEST_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
