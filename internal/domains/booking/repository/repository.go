package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/booking/model"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/logger"
	gRepo "atoll/shared/repository"

	"github.com/jmoiron/sqlx"
)

const summaryQuery = `SELECT
	COUNT(*) AS total,
	COUNT(*) FILTER (WHERE status = 'pending') AS pending,
	COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
	COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
	COUNT(*) FILTER (WHERE status = 'completed') AS completed,
	COUNT(*) FILTER (WHERE created_at >= $1) AS recent,
	COALESCE(SUM(total_price) FILTER (WHERE status IN ('confirmed', 'completed')), 0) AS revenue
FROM bookings`

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Summary(ctx context.Context, since time.Time) (model.Summary, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Summary aggregates every booking in one pass; recent counts bookings created at or after since.
func (r *repositoryImpl) Summary(ctx context.Context, since time.Time) (model.Summary, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Summary")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, summaryQuery)

	var summary model.Summary

	if err := r.db.Read.GetContext(ctx, &summary, summaryQuery, since); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return summary, fmt.Errorf("failed to summarize bookings: %w", err)
	}

	return summary, nil
}
