package postgres_test

import (
	"net/url"
	"testing"

	"atoll/config"
	"atoll/infras/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	endpoint := config.PostgresEndpoint{
		Host:     "db.internal",
		Port:     "6432",
		Username: "atoll",
		Password: "s3cret/&?",
		Timezone: "Indian/Maldives",
		SSLMode:  "require",
	}

	parsed, err := url.Parse(postgres.DSN(endpoint, "atoll", url.Values{"application_name": {"atoll-api"}}))
	require.NoError(t, err)

	assert.Equal(t, "db.internal:6432", parsed.Host)
	assert.Equal(t, "/atoll", parsed.Path)
	assert.Equal(t, "atoll", parsed.User.Username())

	password, ok := parsed.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "s3cret/&?", password)

	query := parsed.Query()
	assert.Equal(t, "require", query.Get("sslmode"))
	assert.Equal(t, "Indian/Maldives", query.Get("timezone"))
	assert.Equal(t, "atoll-api", query.Get("application_name"))
}

func TestDSNOmitsEmptyOptions(t *testing.T) {
	parsed, err := url.Parse(postgres.DSN(config.PostgresEndpoint{Host: "localhost", Port: "5432"}, "atoll", nil))
	require.NoError(t, err)

	assert.Empty(t, parsed.RawQuery)
}

func TestDatabaseName(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "atoll", postgres.DatabaseName(cfg, "atoll"))

	cfg.DB.Postgres.Prefix = "staging_"
	assert.Equal(t, "staging_atoll", postgres.DatabaseName(cfg, "atoll"))
}
