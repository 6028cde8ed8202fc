package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/redirect/model"
	gDto "atoll/shared/dto"
	gRepo "atoll/shared/repository"
)

type Redirect interface {
	Insert(ctx context.Context, model model.Redirect) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Redirect, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Redirect, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Redirect]
}

func New(db *postgres.Connection, otel otel.Otel) Redirect {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Redirect](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
