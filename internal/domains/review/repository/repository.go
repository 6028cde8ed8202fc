package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/review/model"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/logger"
	gRepo "atoll/shared/repository"
)

const statsQuery = `SELECT
	COUNT(*) AS total,
	COUNT(*) FILTER (WHERE approved) AS approved,
	COUNT(*) FILTER (WHERE created_at >= $1) AS recent,
	COALESCE(AVG(rating), 0)::float8 AS average_rating
FROM reviews`

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Stats(ctx context.Context, since time.Time) (model.Stats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Stats counts every review in one pass; recent counts reviews created at or after since.
func (r *repositoryImpl) Stats(ctx context.Context, since time.Time) (model.Stats, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.Stats")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, statsQuery)

	var stats model.Stats

	if err := r.db.Read.GetContext(ctx, &stats, statsQuery, since); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	return stats, nil
}
