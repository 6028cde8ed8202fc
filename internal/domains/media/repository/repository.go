package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/media/model"
	gDto "atoll/shared/dto"
	gRepo "atoll/shared/repository"
)

type Media interface {
	Insert(ctx context.Context, model model.MediaAsset) error
	InsertBulk(ctx context.Context, models []model.MediaAsset) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MediaAsset, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MediaAsset, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.MediaAsset]
}

func New(db *postgres.Connection, otel otel.Otel) Media {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.MediaAsset](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
