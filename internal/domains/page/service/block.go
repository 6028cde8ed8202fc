package service

import (
	"context"
	"fmt"
	"slices"

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
	errBlockNotFound = "block not found"
	errBlockSet      = "block_ids must list every block of the page exactly once"
)

var blockOrder = gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc}

func blockFilter(pageID, blockID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: blockID, Operator: gDto.FilterOperatorEq, Table: model.BlockTableName},
			gDto.Filter{Field: model.FieldPageID, Value: pageID, Operator: gDto.FilterOperatorEq, Table: model.BlockTableName},
		},
	}
}

func (s *serviceImpl) GetBlocks(ctx context.Context, pageID string) (res []dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBlocks")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, pageID); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.GetAll(ctx, blockOrder, shared.FilterByField(model.FieldPageID, pageID, model.BlockTableName))
	if err != nil {
		log.Error().Err(err).Str("page", pageID).Msg("failed to get page blocks")

		return nil, fmt.Errorf("failed to get page blocks: %w", err)
	}

	return dto.BlockResponses(blocks), nil
}

// CreateBlock appends the block unless an explicit order is given.
func (s *serviceImpl) CreateBlock(ctx context.Context, req dto.CreateBlockRequest, pageID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, pageID); err != nil {
		return constant.Empty, err
	}

	position := 0

	if req.Order == nil {
		position, err = s.blockRepo.Count(ctx, shared.FilterByField(model.FieldPageID, pageID, model.BlockTableName))
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to count page blocks: %w", err)
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	block := req.ToModel(pageID, position, user)

	if err = s.blockRepo.Insert(ctx, block); err != nil {
		log.Error().Err(err).Str("page", pageID).Msg("failed to create page block")

		return constant.Empty, fmt.Errorf("failed to create page block: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), pageID)

	return block.ID, nil
}

func (s *serviceImpl) UpdateBlock(ctx context.Context, req dto.UpdateBlockRequest, pageID, blockID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := blockFilter(pageID, blockID)

	exist, err := s.blockRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check block existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errBlockNotFound)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.blockRepo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Str("block", blockID).Msg("failed to update page block")

		return fmt.Errorf("failed to update page block: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), pageID)

	return nil
}

func (s *serviceImpl) DeleteBlock(ctx context.Context, pageID, blockID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := blockFilter(pageID, blockID)

	exist, err := s.blockRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check block existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errBlockNotFound)
	}

	if err = s.blockRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("block", blockID).Msg("failed to delete page block")

		return fmt.Errorf("failed to delete page block: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), pageID)

	return nil
}

// ReorderBlocks renumbers the page's blocks 0..n-1 in the order given. The list must
// name each block of the page once.
func (s *serviceImpl) ReorderBlocks(ctx context.Context, req dto.ReorderBlocksRequest, pageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReorderBlocks")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		page, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(pageID, model.FieldID, model.TableName), model.FieldID)
		if err != nil {
			return err
		}

		if page.ID == constant.Empty {
			return failure.NotFound(errPageNotFound)
		}

		blocks, err := s.blockRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterByField(model.FieldPageID, pageID, model.BlockTableName), model.FieldID)
		if err != nil {
			return err
		}

		current := make([]string, len(blocks))
		for i, block := range blocks {
			current[i] = block.ID
		}

		requested := slices.Clone(req.BlockIDs)
		slices.Sort(current)
		slices.Sort(requested)

		if !slices.Equal(current, requested) {
			return failure.BadRequestFromString(errBlockSet)
		}

		now := timezone.Now()

		for position, blockID := range req.BlockIDs {
			fields := map[string]any{
				model.FieldPosition:      position,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: user,
			}

			if err := s.blockRepo.UpdateTx(ctx, tx, fields, blockFilter(pageID, blockID)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return mapWriteError(err, "failed to reorder page blocks")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), pageID)

	return nil
}
