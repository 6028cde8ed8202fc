package service

import (
	"context"
	"fmt"

	"atoll/internal/domains/page/model"
	"atoll/internal/domains/page/model/dto"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	errVersionNotFound = "version not found"
	errNotPublished    = "page is not published"
)

func versionFilter(pageID string, number int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldPageID, Value: pageID, Operator: gDto.FilterOperatorEq, Table: model.VersionTableName},
			gDto.Filter{Field: model.FieldVersionNumber, Value: number, Operator: gDto.FilterOperatorEq, Table: model.VersionTableName},
		},
	}
}

// Publish marks the page published, bumps its version and stores a snapshot of the
// page and its blocks under the new version number.
func (s *serviceImpl) Publish(ctx context.Context, id string) (res dto.VersionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var version model.Version

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		page, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if page.ID == constant.Empty {
			return failure.NotFound(errPageNotFound)
		}

		blocks, err := s.blockRepo.GetAllTx(ctx, tx, blockOrder, shared.FilterByField(model.FieldPageID, id, model.BlockTableName))
		if err != nil {
			return err
		}

		next := page.Version + 1

		version, err = dto.NewVersion(page, blocks, next, user)
		if err != nil {
			return err
		}

		fields := map[string]any{
			model.FieldStatus:        model.StatusPublished,
			model.FieldVersion:       next,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err
		}

		return s.versionRepo.InsertTx(ctx, tx, version)
	})
	if err != nil {
		return res, mapWriteError(err, "failed to publish page")
	}

	log.Info().Str("page", id).Int("version", version.VersionNumber).Msg("page published")

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	res.FromModel(version)

	return res, nil
}

func (s *serviceImpl) Unpublish(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unpublish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.setStatus(ctx, id, model.StatusDraft, true)
}

func (s *serviceImpl) Archive(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Archive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.setStatus(ctx, id, model.StatusArchived, false)
}

func (s *serviceImpl) setStatus(ctx context.Context, id string, status model.Status, requirePublished bool) error {
	page, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldID, model.FieldStatus)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	if page.ID == constant.Empty {
		return failure.NotFound(errPageNotFound)
	}

	if requirePublished && page.Status != model.StatusPublished {
		return failure.Conflict(errNotPublished)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		return mapWriteError(err, "failed to change page status")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) GetVersions(ctx context.Context, pageID string) (res []dto.VersionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetVersions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, pageID); err != nil {
		return nil, err
	}

	params := gDto.QueryParams{SortBy: model.FieldVersionNumber, SortDir: gDto.SortDirDesc}

	versions, err := s.versionRepo.GetAll(ctx, params, shared.FilterByField(model.FieldPageID, pageID, model.VersionTableName))
	if err != nil {
		log.Error().Err(err).Str("page", pageID).Msg("failed to get page versions")

		return nil, fmt.Errorf("failed to get page versions: %w", err)
	}

	res = make([]dto.VersionResponse, len(versions))
	for i, version := range versions {
		res[i].FromModel(version)
	}

	return res, nil
}

func (s *serviceImpl) GetVersion(ctx context.Context, pageID string, number int) (res dto.VersionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetVersion")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	version, err := s.versionRepo.Get(ctx, versionFilter(pageID, number))
	if err != nil {
		return res, fmt.Errorf("failed to get page version: %w", err)
	}

	if version.ID == constant.Empty {
		return res, failure.NotFound(errVersionNotFound)
	}

	res.FromModel(version)

	return res, nil
}

// RestoreVersion writes a snapshot's content, meta and SEO fields back to the page and
// replaces its blocks with the snapshot's. Status and version number stay as they are.
func (s *serviceImpl) RestoreVersion(ctx context.Context, pageID string, number int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RestoreVersion")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	version, err := s.versionRepo.Get(ctx, versionFilter(pageID, number))
	if err != nil {
		return fmt.Errorf("failed to get page version: %w", err)
	}

	if version.ID == constant.Empty {
		return failure.NotFound(errVersionNotFound)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields, blocks, err := dto.Restore(version, user)
	if err != nil {
		log.Error().Err(err).Str("page", pageID).Int("version", number).Msg("failed to decode page version")

		return fmt.Errorf("failed to decode page version: %w", err)
	}

	filter := shared.FilterByID(pageID, model.FieldID, model.TableName)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		page, err := s.repo.GetForUpdateTx(ctx, tx, filter, model.FieldID)
		if err != nil {
			return err
		}

		if page.ID == constant.Empty {
			return failure.NotFound(errPageNotFound)
		}

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err
		}

		if err := s.blockRepo.DeleteTx(ctx, tx, shared.FilterByField(model.FieldPageID, pageID, model.BlockTableName)); err != nil {
			return err
		}

		return s.blockRepo.InsertBulkTx(ctx, tx, blocks)
	})
	if err != nil {
		return mapWriteError(err, "failed to restore page version")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), pageID)

	return nil
}
