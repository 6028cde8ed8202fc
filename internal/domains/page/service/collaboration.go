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
	errReviewNotFound  = "review not found"
	errReviewCompleted = "review is already completed"
	errThreadNotFound  = "thread not found"
	errThreadBlock     = "block does not belong to this page"
)

var oldestFirst = gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

func childFilter(table, pageID, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: table},
			gDto.Filter{Field: model.FieldPageID, Value: pageID, Operator: gDto.FilterOperatorEq, Table: table},
		},
	}
}

func (s *serviceImpl) RequestReview(ctx context.Context, req dto.RequestReviewRequest, pageID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, pageID); err != nil {
		return constant.Empty, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	review := req.ToModel(pageID, user)

	if err = s.reviewRepo.Insert(ctx, review); err != nil {
		return constant.Empty, mapWriteError(err, "failed to request page review")
	}

	log.Info().Str("page", pageID).Str("reviewer", review.ReviewerID).Msg("page review requested")

	return review.ID, nil
}

// CompleteReview records the reviewer's outcome. A review is completed once.
func (s *serviceImpl) CompleteReview(ctx context.Context, req dto.CompleteReviewRequest, pageID, reviewID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := childFilter(model.ReviewTableName, pageID, reviewID)

	review, err := s.reviewRepo.Get(ctx, filter, model.FieldID, model.FieldStatus)
	if err != nil {
		return fmt.Errorf("failed to get page review: %w", err)
	}

	if review.ID == constant.Empty {
		return failure.NotFound(errReviewNotFound)
	}

	if review.Status != model.ReviewPending {
		return failure.Conflict(errReviewCompleted)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		model.FieldComments:      req.Comments,
		model.FieldCompletedAt:   now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.reviewRepo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("review", reviewID).Msg("failed to complete page review")

		return fmt.Errorf("failed to complete page review: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetReviews(ctx context.Context, pageID string) (res []dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReviews")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, pageID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetAll(ctx, oldestFirst, shared.FilterByField(model.FieldPageID, pageID, model.ReviewTableName))
	if err != nil {
		log.Error().Err(err).Str("page", pageID).Msg("failed to get page reviews")

		return nil, fmt.Errorf("failed to get page reviews: %w", err)
	}

	res = make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		res[i].FromModel(review)
	}

	return res, nil
}

// CreateThread opens a comment thread and stores its first comment, if any, in the same transaction.
func (s *serviceImpl) CreateThread(ctx context.Context, req dto.CreateThreadRequest, pageID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateThread")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, pageID); err != nil {
		return constant.Empty, err
	}

	if req.BlockID != nil {
		exist, err := s.blockRepo.Exist(ctx, blockFilter(pageID, *req.BlockID))
		if err != nil {
			return constant.Empty, fmt.Errorf("failed to check page block: %w", err)
		}

		if !exist {
			return constant.Empty, failure.BadRequestFromString(errThreadBlock)
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	thread := req.ToModel(pageID, user)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.threadRepo.InsertTx(ctx, tx, thread); err != nil {
			return err
		}

		if req.Comment == nil {
			return nil
		}

		return s.commentRepo.InsertTx(ctx, tx, req.Comment.ToModel(thread.ID, user))
	})
	if err != nil {
		return constant.Empty, mapWriteError(err, "failed to create comment thread")
	}

	return thread.ID, nil
}

// GetThreads lists the page's threads oldest first, each with its comments in posting order.
func (s *serviceImpl) GetThreads(ctx context.Context, pageID string) (res []dto.ThreadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetThreads")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, pageID); err != nil {
		return nil, err
	}

	threads, err := s.threadRepo.GetAll(ctx, oldestFirst, shared.FilterByField(model.FieldPageID, pageID, model.ThreadTableName))
	if err != nil {
		log.Error().Err(err).Str("page", pageID).Msg("failed to get comment threads")

		return nil, fmt.Errorf("failed to get comment threads: %w", err)
	}

	res = make([]dto.ThreadResponse, len(threads))
	if len(threads) == 0 {
		return res, nil
	}

	ids := make([]string, len(threads))
	for i, thread := range threads {
		ids[i] = thread.ID
	}

	comments, err := s.commentRepo.GetAll(ctx, oldestFirst, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldThreadID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.CommentTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("page", pageID).Msg("failed to get comments")

		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	byThread := make(map[string][]model.Comment, len(threads))
	for _, comment := range comments {
		byThread[comment.ThreadID] = append(byThread[comment.ThreadID], comment)
	}

	for i, thread := range threads {
		res[i].FromModel(thread, byThread[thread.ID])
	}

	return res, nil
}

func (s *serviceImpl) AddComment(ctx context.Context, req dto.CreateCommentRequest, pageID, threadID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddComment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureThread(ctx, pageID, threadID); err != nil {
		return constant.Empty, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	comment := req.ToModel(threadID, user)

	if err = s.commentRepo.Insert(ctx, comment); err != nil {
		log.Error().Err(err).Str("thread", threadID).Msg("failed to add comment")

		return constant.Empty, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment.ID, nil
}

// ResolveThread marks a thread resolved, or reopens it when resolved is false.
func (s *serviceImpl) ResolveThread(ctx context.Context, pageID, threadID string, resolved bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveThread")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureThread(ctx, pageID, threadID); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldIsResolved:    resolved,
		model.FieldResolvedAt:    nil,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if resolved {
		fields[model.FieldResolvedAt] = now
	}

	if err = s.threadRepo.Update(ctx, fields, childFilter(model.ThreadTableName, pageID, threadID)); err != nil {
		log.Error().Err(err).Str("thread", threadID).Msg("failed to update comment thread")

		return fmt.Errorf("failed to update comment thread: %w", err)
	}

	return nil
}

func (s *serviceImpl) ensureThread(ctx context.Context, pageID, threadID string) error {
	thread, err := s.threadRepo.Get(ctx, childFilter(model.ThreadTableName, pageID, threadID), model.FieldID)
	if err != nil {
		return fmt.Errorf("failed to get comment thread: %w", err)
	}

	if thread.ID == constant.Empty {
		return failure.NotFound(errThreadNotFound)
	}

	return nil
}
