package dto_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"atoll/shared/constant"
	"atoll/shared/dto"
	"atoll/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	if metadata.CreatedAt != createdAt.Format(constant.DateFormat) {
		t.Errorf("unexpected CreatedAt %s", metadata.CreatedAt)
	}

	if metadata.ModifiedAt != modifiedAt.Format(constant.DateFormat) {
		t.Errorf("unexpected ModifiedAt %s", metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" || metadata.ModifiedBy != "modifier" {
		t.Errorf("unexpected authors %s/%s", metadata.CreatedBy, metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "all parameters",
			queryParams:    map[string]string{"page": "2", "limit": "20", "sort_by": "name", "sort_dir": "asc"},
			defaultRequest: false,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: "ASC"},
		},
		{
			name:           "defaults",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:           "no defaults",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			queryParams:    map[string]string{"page": "-1", "limit": "abc"},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:           "sort by without direction sorts ascending",
			queryParams:    map[string]string{"page": "3", "sort_by": "price_per_night"},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "price_per_night",
				SortDir: dto.SortDirAsc,
			},
		},
		{
			name:           "unknown direction is ignored",
			queryParams:    map[string]string{"sort_by": "name", "sort_dir": "sideways"},
			defaultRequest: false,
			expected:       dto.QueryParams{SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "dash prefix sorts descending",
			queryParams:    map[string]string{"sort_by": "-price_per_night"},
			defaultRequest: false,
			expected:       dto.QueryParams{SortBy: "price_per_night", SortDir: dto.SortDirDesc},
		},
		{
			name:           "limit is capped",
			queryParams:    map[string]string{"limit": "500"},
			defaultRequest: false,
			expected:       dto.QueryParams{Limit: constant.MaxValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/v1/properties")
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			u.RawQuery = query.Encode()

			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			if *queryParams != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *queryParams)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equal with table",
			filter:    dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "strictly less with arg name",
			filter:    dto.Filter{ArgName: "req_check_out", Field: "check_in_date", Value: "2025-02-06", Operator: dto.FilterOperatorLess},
			wantWhere: "check_in_date < :req_check_out",
			wantArgs:  map[string]any{"req_check_out": "2025-02-06"},
		},
		{
			name:      "strictly greater",
			filter:    dto.Filter{ArgName: "req_check_in", Field: "check_out_date", Value: "2025-02-04", Operator: dto.FilterOperatorGreater},
			wantWhere: "check_out_date > :req_check_in",
			wantArgs:  map[string]any{"req_check_in": "2025-02-04"},
		},
		{
			name:      "in slice",
			filter:    dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1) ",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "not in slice",
			filter:    dto.Filter{Field: "category", Value: []string{"experience"}, Operator: dto.FilterOperatorNotIn},
			wantWhere: "category NOT IN (:category_0) ",
			wantArgs:  map[string]any{"category_0": "experience"},
		},
		{
			name:      "empty in never matches",
			filter:    dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "array contains",
			filter:    dto.Filter{ArgName: "tag", Field: "tags", Value: "beach", Operator: dto.FilterOperatorContains, Table: "media_assets"},
			wantWhere: ":tag = ANY(media_assets.tags)",
			wantArgs:  map[string]any{"tag": "beach"},
		},
		{
			name:      "like wraps the value",
			filter:    dto.Filter{Field: "name", Value: "Villa", Operator: dto.FilterOperatorLike, Table: "properties"},
			wantWhere: `LOWER(properties.name) LIKE LOWER(:name) ESCAPE '\' `,
			wantArgs:  map[string]any{"name": "%Villa%"},
		},
		{
			name:      "like matches wildcards literally",
			filter:    dto.Filter{Field: "name", Value: `50%_off\`, Operator: dto.FilterOperatorLike},
			wantWhere: `LOWER(name) LIKE LOWER(:name) ESCAPE '\' `,
			wantArgs:  map[string]any{"name": `%50\%\_off\\%`},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "customer_id", Operator: dto.FilterIsNull},
			wantWhere: "customer_id IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for key, value := range tt.wantArgs {
				if args[key] != value {
					t.Errorf("expected arg %s=%v, got %v", key, value, args[key])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "property_id", Value: "p-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "status_a", Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "status_b", Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(property_id = :property_id AND (status = :status_a OR status = :status_b))"
	if where != expected {
		t.Errorf("expected %q, got %q", expected, where)
	}

	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d", len(args))
	}
}

func TestFilterGroup_Add(t *testing.T) {
	base := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	extended := base.Add(dto.Filter{Field: "locale", Value: "en", Operator: dto.FilterOperatorEq})

	if len(base.Filters) != 0 {
		t.Error("expected Add to leave the receiver untouched")
	}

	where, _ := extended.GetWhereClause()
	if !strings.Contains(where, "locale = :locale") {
		t.Errorf("unexpected where %q", where)
	}
}
