package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/availability/model"
	gDto "atoll/shared/dto"
	gRepo "atoll/shared/repository"
)

type Availability interface {
	Insert(ctx context.Context, model model.Availability) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Availability, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Availability, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Availability]
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Availability](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
