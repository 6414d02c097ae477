package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// MemoryStorage as RECRUIT_STORAGE_FILE keeps the session for this process only.
const MemoryStorage = ":memory:"

type Config struct {
	APIBaseURL string        `env:"RECRUIT_API_BASE_URL, default=http://localhost:5000/api"`
	APITimeout time.Duration `env:"RECRUIT_API_TIMEOUT, default=10s"`
	RateLimit  float64       `env:"RECRUIT_API_RATE_LIMIT, default=0"` // requests per second, 0 disables
	Burst      int           `env:"RECRUIT_API_BURST, default=5"`

	StorageFile string `env:"RECRUIT_STORAGE_FILE"` // Optional: defaults under the user config dir
	MetricsFile string `env:"RECRUIT_METRICS_FILE"` // Optional: Prometheus textfile written on exit

	Env       string `env:"ENV, default=prod"`
	LogLevel  string `env:"LOG_LEVEL, default=warn"`
	LogFormat string `env:"LOG_FORMAT, default=text"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	return LoadConfigFrom(ctx, envconfig.OsLookuper())
}

// LoadConfigFrom reads the configuration through l.
func LoadConfigFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.StorageFile == "" {
		cfg.StorageFile = defaultStorageFile()
	}
	return cfg, nil
}

func defaultStorageFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "recruit.db"
	}
	return filepath.Join(dir, "dentalrecruit", "storage.db")
}
