package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"atoll/config"
	"atoll/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const DefaultSource = "file://migrations/postgres"

type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

func ParseAction(value string) (Action, error) {
	switch action := Action(value); action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop:
		return action, nil
	default:
		return "", fmt.Errorf("unknown migration action %q, use up, down, drop or step-up", value)
	}
}

// DatabaseURL is the write connection in golang-migrate form, tracking versions in the
// configured migration table.
func DatabaseURL(config *config.Config) string {
	write := config.DB.Postgres.Write

	extra := url.Values{}
	if config.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	return postgres.DSN(write, postgres.DatabaseName(config, write.Name), extra)
}

// Apply runs one migration action against databaseURL with migrations read from source.
func Apply(source, databaseURL string, action Action) error {
	mig, err := migrate.New(source, databaseURL)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations (%s): %w", action, err)
	}

	version, dirty, vErr := mig.Version()
	if vErr != nil && !errors.Is(vErr, migrate.ErrNilVersion) {
		log.Warn().Err(vErr).Msg("failed to read migration version")
	}

	log.Info().Str("action", string(action)).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")

	return nil
}

func Runner(config *config.Config, action Action) error {
	return Apply(DefaultSource, DatabaseURL(config), action)
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
