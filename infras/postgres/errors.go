package postgres

import (
	"errors"

	"atoll/shared/constant"

	"github.com/lib/pq"
)

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeFkViolation)
}

// IsExclusionViolation reports a rejected row from an EXCLUDE constraint, e.g. overlapping bookings.
func IsExclusionViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeExclusionViolation)
}
