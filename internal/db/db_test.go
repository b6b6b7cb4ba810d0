package database

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/pkg/config"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestNewDatabaseConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Repositories.Postgres = config.PostgresConfig{
		Host:     "db",
		Port:     "5432",
		DB:       "wanderai",
		Username: "wander",
		Password: "p@ss word",
		SSLMode:  "require",
	}

	dbCfg, err := NewDatabaseConfig(cfg, zap.NewNop())

	require.NoError(t, err)
	u, err := url.Parse(dbCfg.ConnectionURL)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/wanderai", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss word", pw)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	assert.Equal(t, "utc", u.Query().Get("timezone"))
}

func TestNewDatabaseConfig_Missing(t *testing.T) {
	_, err := NewDatabaseConfig(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewDatabaseConfig(&config.Config{}, zap.NewNop())
	assert.Error(t, err)
}

func TestWaitForDB(t *testing.T) {
	calls := 0
	ok := WaitForDB(context.Background(), pingFunc(func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("connection refused")
		}
		return nil
	}), zap.NewNop())

	assert.True(t, ok)
	assert.Equal(t, 2, calls)
}

func TestWaitForDB_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok := WaitForDB(ctx, pingFunc(func(ctx context.Context) error {
		return ctx.Err()
	}), zap.NewNop())

	assert.False(t, ok)
}

func TestRunMigrations_RejectsScheme(t *testing.T) {
	err := RunMigrations("mysql://localhost/db", zap.NewNop())
	assert.ErrorContains(t, err, "invalid database URL scheme")
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_create_kv_store.up.sql")
	assert.Contains(t, names, "000001_create_kv_store.down.sql")
}
