package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/tourpackage/model"
	gDto "atoll/shared/dto"
	gRepo "atoll/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Package interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Package) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Package, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Package, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Package, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Property interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PackageProperty, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.PackageProperty) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Destination interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Destination, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Destination) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Itinerary interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ItineraryDay, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.ItineraryDay) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Inclusion interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Inclusion, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Inclusion) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Activity interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Activity, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Activity, error)
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Activity) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Package]
}

func New(db *postgres.Connection, otel otel.Otel) Package {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Package](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type propertyRepositoryImpl struct {
	gRepo.Repository[model.PackageProperty]
}

func NewProperty(db *postgres.Connection, otel otel.Otel) Property {
	return &propertyRepositoryImpl{
		Repository: gRepo.NewRepository[model.PackageProperty](model.PropertyEntityName, model.PropertyTableName, model.FieldPackageID, db, otel),
	}
}

type destinationRepositoryImpl struct {
	gRepo.Repository[model.Destination]
}

func NewDestination(db *postgres.Connection, otel otel.Otel) Destination {
	return &destinationRepositoryImpl{
		Repository: gRepo.NewRepository[model.Destination](model.DestinationEntityName, model.DestinationTableName, model.FieldID, db, otel),
	}
}

type itineraryRepositoryImpl struct {
	gRepo.Repository[model.ItineraryDay]
}

func NewItinerary(db *postgres.Connection, otel otel.Otel) Itinerary {
	return &itineraryRepositoryImpl{
		Repository: gRepo.NewRepository[model.ItineraryDay](model.ItineraryEntityName, model.ItineraryTableName, model.FieldID, db, otel),
	}
}

type inclusionRepositoryImpl struct {
	gRepo.Repository[model.Inclusion]
}

func NewInclusion(db *postgres.Connection, otel otel.Otel) Inclusion {
	return &inclusionRepositoryImpl{
		Repository: gRepo.NewRepository[model.Inclusion](model.InclusionEntityName, model.InclusionTableName, model.FieldID, db, otel),
	}
}

type activityRepositoryImpl struct {
	gRepo.Repository[model.Activity]
}

func NewActivity(db *postgres.Connection, otel otel.Otel) Activity {
	return &activityRepositoryImpl{
		Repository: gRepo.NewRepository[model.Activity](model.ActivityEntityName, model.ActivityTableName, model.FieldID, db, otel),
	}
}
