package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"atoll/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Connection splits reads from writes. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type pool struct {
	maxOpen  int
	maxIdle  int
	idleTime time.Duration
	retries  int
	backoff  time.Duration
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	p := pool{
		maxOpen:  pg.MaxOpenConns,
		maxIdle:  pg.MaxIdleConns,
		idleTime: time.Duration(pg.ConnMaxIdleSec) * time.Second,
		retries:  max(pg.MaxRetry, 1),
		backoff:  time.Duration(pg.RetryWaitTime) * time.Second,
	}

	conn := &Connection{
		Read:  p.open("read", pg.Read, DatabaseName(config, pg.Read.Name)),
		Write: p.open("write", pg.Write, DatabaseName(config, pg.Write.Name)),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("attempts", p.retries).Msg("Failed to connect to postgres")
	}

	return conn
}

func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed to close database connection")
		}
	}
}

// DatabaseName applies the optional environment prefix, e.g. "staging_" + "atoll".
func DatabaseName(config *config.Config, name string) string {
	return config.DB.Postgres.Prefix + name
}

// DSN renders a postgres URL for endpoint. Extra query values are merged after sslmode and
// the session time zone.
func DSN(endpoint config.PostgresEndpoint, dbName string, extra url.Values) string {
	query := url.Values{}

	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     dbName,
		RawQuery: query.Encode(),
	}).String()
}

func (p pool) open(name string, endpoint config.PostgresEndpoint, dbName string) *sqlx.DB {
	dsn := DSN(endpoint, dbName, nil)

	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", dbName).
		Logger()

	for attempt := 1; attempt <= p.retries; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(p.maxOpen)
			db.SetMaxIdleConns(p.maxIdle)
			db.SetConnMaxIdleTime(p.idleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < p.retries {
			time.Sleep(p.backoff)
		}
	}

	return nil
}
