package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	pkgcfg "github.com/Skotchmaster/storefront/pkg/config"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMongo    = "mongo"
)

type Config struct {
	ServiceName string
	ServerPort  string
	LogLevel    string

	StoreDriver   string
	DatabaseURL   string
	MongoDatabase string

	JWTSecret []byte
	TokenTTL  time.Duration

	KafkaBrokers    []string
	KafkaPartitions int

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

// Load reads envFiles (a missing file is only a notice) and then the process
// environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			log.Printf("notice: %s not loaded: %v, using process environment", f, err)
		}
	}

	cfg := Config{
		ServiceName:     pkgcfg.EnvDefault("SERVICE_NAME", "shop_api"),
		ServerPort:      pkgcfg.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:        pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		StoreDriver:     pkgcfg.EnvDefault("STORE_DRIVER", StorePostgres),
		DatabaseURL:     pkgcfg.EnvDefault("DATABASE_URL", ""),
		MongoDatabase:   pkgcfg.EnvDefault("MONGO_DATABASE", "shop"),
		JWTSecret:       []byte(pkgcfg.EnvDefault("JWT_SECRET", "")),
		TokenTTL:        pkgcfg.EnvDurationDefault("JWT_TTL", tokens.DefaultTTL),
		KafkaBrokers:    pkgcfg.CSV(pkgcfg.EnvDefault("KAFKA_BROKERS", "")),
		KafkaPartitions: pkgcfg.EnvIntDefault("KAFKA_PARTITIONS", 1),
		ESURL:           pkgcfg.EnvDefault("ES_URL", ""),
		ESUser:          pkgcfg.EnvDefault("ES_USER", ""),
		ESPassword:      pkgcfg.EnvDefault("ES_PASSWORD", ""),
		ESIndex:         pkgcfg.EnvDefault("ES_INDEX", ""),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := pkgcfg.RequireNonEmpty(
		pkgcfg.Required{Env: "DATABASE_URL", Value: c.DatabaseURL},
		pkgcfg.Required{Env: "JWT_SECRET", Value: string(c.JWTSecret)},
	); err != nil {
		return err
	}
	switch c.StoreDriver {
	case StorePostgres, StoreSQLite, StoreMongo:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c Config) Addr() string { return ":" + c.ServerPort }
