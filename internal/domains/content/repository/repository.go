package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/content/model"
	gDto "atoll/shared/dto"
	gRepo "atoll/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Section interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Section, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Section, error)
	Upsert(ctx context.Context, model model.Section, conflictColumns ...string) error
}

type Translation interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Translation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Translation, conflictColumns ...string) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type sectionRepositoryImpl struct {
	gRepo.Repository[model.Section]
}

func NewSection(db *postgres.Connection, otel otel.Otel) Section {
	return &sectionRepositoryImpl{
		Repository: gRepo.NewRepository[model.Section](model.SectionEntityName, model.SectionTableName, model.FieldID, db, otel),
	}
}

type translationRepositoryImpl struct {
	gRepo.Repository[model.Translation]
}

func NewTranslation(db *postgres.Connection, otel otel.Otel) Translation {
	return &translationRepositoryImpl{
		Repository: gRepo.NewRepository[model.Translation](model.TranslationEntityName, model.TranslationTableName, model.FieldID, db, otel),
	}
}
