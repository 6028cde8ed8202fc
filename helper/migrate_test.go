package helper_test

import (
	"net/url"
	"testing"

	"atoll/config"
	"atoll/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, value := range []string{"up", "down", "step-up", "drop"} {
		action, err := helper.ParseAction(value)
		require.NoError(t, err)
		assert.Equal(t, helper.Action(value), action)
	}

	_, err := helper.ParseAction("sideways")
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations_atoll"
	cfg.DB.Postgres.Write.Host = "localhost"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "atoll"
	cfg.DB.Postgres.Write.Password = "p@ss:word"
	cfg.DB.Postgres.Write.Name = "atoll"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	parsed, err := url.Parse(helper.DatabaseURL(cfg))
	require.NoError(t, err)

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "localhost:5432", parsed.Host)
	assert.Equal(t, "/test_atoll", parsed.Path)

	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss:word", password)

	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations_atoll", parsed.Query().Get("x-migrations-table"))
}
