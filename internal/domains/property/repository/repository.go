package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/property/model"
	gDto "atoll/shared/dto"
	gRepo "atoll/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Property interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Property) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Property, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Property, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Property, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type PropertyAmenity interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PropertyAmenity, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.PropertyAmenity) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Property]
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Property](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type amenityRepositoryImpl struct {
	gRepo.Repository[model.PropertyAmenity]
}

func NewAmenity(db *postgres.Connection, otel otel.Otel) PropertyAmenity {
	return &amenityRepositoryImpl{
		Repository: gRepo.NewRepository[model.PropertyAmenity](model.AmenityEntityName, model.AmenityTableName, model.FieldPropertyID, db, otel),
	}
}
