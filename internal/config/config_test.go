package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SERVICE_NAME", "SERVER_PORT", "LOG_LEVEL", "STORE_DRIVER", "DATABASE_URL", "MONGO_DATABASE",
	"JWT_SECRET", "JWT_TTL", "KAFKA_BROKERS", "KAFKA_PARTITIONS", "ES_URL", "ES_USER", "ES_PASSWORD", "ES_INDEX",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://shop@localhost/shop")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "shop_api", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "shop", cfg.MongoDatabase)
	assert.Equal(t, 7*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 1, cfg.KafkaPartitions)
	assert.Empty(t, cfg.ESURL)
}

func TestLoad_MissingRequired(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.EqualError(t, err, "missing required env DATABASE_URL, JWT_SECRET")
}

func TestLoad_EnvFileAndDriver(t *testing.T) {
	clearEnv(t)
	for _, k := range envKeys {
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=file::memory:\nJWT_SECRET=abc\nSTORE_DRIVER=sqlite\nJWT_TTL=90m\nKAFKA_PARTITIONS=3\n"), 0o600))
	t.Cleanup(func() {
		for _, k := range envKeys {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, []byte("abc"), cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.KafkaPartitions)

	cfg.StoreDriver = "cassandra"
	assert.ErrorContains(t, cfg.Validate(), "unsupported STORE_DRIVER")
}
