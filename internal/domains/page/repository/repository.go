package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/page/model"
	gDto "atoll/shared/dto"
	gRepo "atoll/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Page interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Page) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Page, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Page, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Page, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Block interface {
	Insert(ctx context.Context, model model.Block) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Block) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Block, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Block, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type Version interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Version) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Version, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Version, error)
}

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type Thread interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Thread) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Thread, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Thread, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type Comment interface {
	Insert(ctx context.Context, model model.Comment) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Comment) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Comment, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Page]
}

func New(db *postgres.Connection, otel otel.Otel) Page {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Page](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type blockRepositoryImpl struct {
	gRepo.Repository[model.Block]
}

func NewBlock(db *postgres.Connection, otel otel.Otel) Block {
	return &blockRepositoryImpl{
		Repository: gRepo.NewRepository[model.Block](model.BlockEntityName, model.BlockTableName, model.FieldID, db, otel),
	}
}

type versionRepositoryImpl struct {
	gRepo.Repository[model.Version]
}

func NewVersion(db *postgres.Connection, otel otel.Otel) Version {
	return &versionRepositoryImpl{
		Repository: gRepo.NewRepository[model.Version](model.VersionEntityName, model.VersionTableName, model.FieldID, db, otel),
	}
}

type reviewRepositoryImpl struct {
	gRepo.Repository[model.Review]
}

func NewReview(db *postgres.Connection, otel otel.Otel) Review {
	return &reviewRepositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.ReviewEntityName, model.ReviewTableName, model.FieldID, db, otel),
	}
}

type threadRepositoryImpl struct {
	gRepo.Repository[model.Thread]
}

func NewThread(db *postgres.Connection, otel otel.Otel) Thread {
	return &threadRepositoryImpl{
		Repository: gRepo.NewRepository[model.Thread](model.ThreadEntityName, model.ThreadTableName, model.FieldID, db, otel),
	}
}

type commentRepositoryImpl struct {
	gRepo.Repository[model.Comment]
}

func NewComment(db *postgres.Connection, otel otel.Otel) Comment {
	return &commentRepositoryImpl{
		Repository: gRepo.NewRepository[model.Comment](model.CommentEntityName, model.CommentTableName, model.FieldID, db, otel),
	}
}
