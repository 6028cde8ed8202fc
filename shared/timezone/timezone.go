package timezone

import (
	"errors"
	"fmt"
	"time"

	"atoll/config"
	"atoll/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location

	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Indian/Maldives' or 'UTC'")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseDate parses a calendar date (YYYY-MM-DD). Dates are kept at UTC midnight so day
// arithmetic is not affected by DST shifts of the application timezone.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return date, nil
}

// FormatDate renders t as YYYY-MM-DD; the zero time renders as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return t.Format(constant.DateOnlyFormat)
}

// Today returns the current calendar date in the application timezone, at UTC midnight.
func Today() time.Time {
	now := Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from start to end; negative when end is before start.
func DaysBetween(start, end time.Time) int {
	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDate := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return int((endDate.Unix() - startDate.Unix()) / constant.SecondsPerDay)
}
