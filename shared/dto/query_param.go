package dto

import (
	"net/http"
	"strconv"
	"strings"

	"atoll/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	descendingPrefix = "-"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positiveInt(value string) int {
	number, err := strconv.Atoi(value)
	if err != nil || number < 1 {
		return 0
	}

	return number
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// With defaultRequest the missing values fall back to the list defaults; without it only the
// parameters present are set. Limit is capped at constant.MaxValueLimit.
//
// sort_by accepts the "-field" shorthand for a descending sort, e.g. ?sort_by=-price_per_night.
// SortBy is only a candidate column; the repository drops it unless it names a real column.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := positiveInt(queryParams.Get(constant.RequestParamPage)); page > 0 {
		q.Page = page
	}

	if limit := positiveInt(queryParams.Get(constant.RequestParamLimit)); limit > 0 {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := strings.TrimSpace(queryParams.Get(constant.RequestParamSortBy)); sortBy != "" {
		if field, ok := strings.CutPrefix(sortBy, descendingPrefix); ok {
			q.SortBy = field
			q.SortDir = SortDirDesc
		} else {
			q.SortBy = sortBy
		}
	}

	switch sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}

		if q.SortBy == "" {
			q.SortBy = constant.DefaultValueSortBy
			q.SortDir = constant.DefaultValueSortDir
		}
	}

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}
