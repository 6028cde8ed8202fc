package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atoll/config"
	"atoll/infras/kafka"
	"atoll/infras/metrics"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/booking/model"
	"atoll/internal/domains/booking/model/dto"
	"atoll/internal/domains/booking/repository"
	propertyModel "atoll/internal/domains/property/model"
	propertyRepo "atoll/internal/domains/property/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	recentBookingDays = 30
	maxStayNights     = 365
	maxTotalPrice     = 9_999_999_999.99

	errBookingNotFound   = "booking not found"
	errPropertyNotFound  = "property not found"
	errDatesRequired     = "check_in and check_out dates are required"
	errInvalidDateFormat = "Invalid date format. Use YYYY-MM-DD"
	errCheckOutOrder     = "check-out date must be after check-in date"
	errNotAvailable      = "property is not available for the selected dates"
	errAlreadyCancelled  = "booking is already cancelled"
	errCancelCompleted   = "completed bookings cannot be cancelled"
	errStayTooLong       = "stay cannot be longer than 365 nights"
	errNoCustomer        = "customer account required"
	errPriceTooHigh      = "total price exceeds the maximum allowed amount"
)

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Cancel(ctx context.Context, id string) error
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	propertyRepo propertyRepo.Property
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	publisher    kafka.Publisher
	metrics      metrics.Metrics
}

func New(
	repo repository.Booking,
	propertyRepo propertyRepo.Property,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher kafka.Publisher,
	metrics metrics.Metrics,
) Booking {
	return &serviceImpl{
		repo:         repo,
		propertyRepo: propertyRepo,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		publisher:    publisher,
		metrics:      metrics,
	}
}

// parseStay validates a check-in/check-out pair and returns the number of nights.
func parseStay(checkIn, checkOut string) (time.Time, time.Time, int, error) {
	if checkIn == constant.Empty || checkOut == constant.Empty {
		return time.Time{}, time.Time{}, 0, failure.BadRequestFromString(errDatesRequired)
	}

	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, 0, failure.BadRequestFromString(errInvalidDateFormat)
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, 0, failure.BadRequestFromString(errInvalidDateFormat)
	}

	nights := timezone.DaysBetween(in, out)
	if nights <= 0 {
		return time.Time{}, time.Time{}, 0, failure.BadRequestFromString(errCheckOutOrder)
	}

	if nights > maxStayNights {
		return time.Time{}, time.Time{}, 0, failure.BadRequestFromString(errStayTooLong)
	}

	return in, out, nights, nil
}

// overlapFilter matches active bookings of the property whose stay intersects [checkIn, checkOut).
func overlapFilter(propertyID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		gDto.Filter{
			ArgName:  "req_check_out",
			Field:    model.FieldCheckInDate,
			Value:    timezone.FormatDate(checkOut),
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "req_check_in",
			Field:    model.FieldCheckOutDate,
			Value:    timezone.FormatDate(checkIn),
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func propertyFilter(id string) gDto.FilterGroup {
	return shared.FilterByID(id, propertyModel.FieldID, propertyModel.TableName)
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.CheckAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, nights, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	property, err := s.propertyRepo.Get(ctx, propertyFilter(req.PropertyID), propertyModel.FieldID, propertyModel.FieldName, propertyModel.FieldPricePerNight)
	if err != nil {
		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound(errPropertyNotFound)
	}

	overlapping, err := s.repo.Exist(ctx, overlapFilter(property.ID, checkIn, checkOut, constant.Empty))
	if err != nil {
		log.Error().Err(err).Str("property_id", property.ID).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	return dto.CheckAvailabilityResponse{
		PropertyID:    property.ID,
		PropertyName:  property.Name,
		CheckIn:       timezone.FormatDate(checkIn),
		CheckOut:      timezone.FormatDate(checkOut),
		Nights:        nights,
		IsAvailable:   !overlapping,
		PricePerNight: property.PricePerNight,
		TotalPrice:    property.PricePerNight * float64(nights),
		Currency:      s.cfg.App.Currency,
	}, nil
}

// Create books the property for the requested stay. The property row stays locked until
// commit so two concurrent requests for the same property are checked one after the other.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, nights, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.ContextInternal {
		user = constant.Empty
	}

	var booking model.Booking

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		property, err := s.propertyRepo.GetForUpdateTx(ctx, tx, propertyFilter(req.PropertyID),
			propertyModel.FieldID, propertyModel.FieldName, propertyModel.FieldPricePerNight, propertyModel.FieldImages)
		if err != nil {
			return err
		}

		if property.ID == constant.Empty {
			return failure.NotFound(errPropertyNotFound)
		}

		overlapping, err := s.repo.ExistTx(ctx, tx, overlapFilter(property.ID, checkIn, checkOut, constant.Empty))
		if err != nil {
			return err
		}

		if overlapping {
			return failure.BadRequestFromString(errNotAvailable)
		}

		total := property.PricePerNight * float64(nights)
		if total > maxTotalPrice {
			return failure.BadRequestFromString(errPriceTooHigh)
		}

		booking = req.ToModel(user, checkIn, checkOut, total)
		booking.PropertyName = property.Name

		if len(property.Images) > 0 {
			booking.PropertyImage = &property.Images[0]
		}

		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		if postgres.IsExclusionViolation(err) {
			return res, failure.BadRequestFromString(errNotAvailable)
		}

		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, err
		}

		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		s.metrics.ObserveBooking(string(booking.Status))
		s.publish(c, booking, model.EventCreated, constant.Empty)
		s.invalidateCaches(c, constant.Empty)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// GetMine lists the bookings linked to the caller's account. Anonymous bookings made with the
// same email stay invisible: registration does not prove ownership of the address.
func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized(errNoCustomer)
	}

	filter := shared.FilterByID(user, model.FieldCustomerID, model.TableName)

	if req.SortBy == constant.Empty {
		req.SortBy = constant.FieldCreatedAt
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("failed to get customer bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return res, failure.NotFound(errBookingNotFound)
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	// customers only see their own bookings; others get the same answer as a missing id
	if !canAccess(ctx, res.CustomerID) {
		return dto.BookingResponse{}, failure.NotFound(errBookingNotFound)
	}

	return res, nil
}

// UpdateStatus moves a booking to another status. Re-activating a cancelled or completed
// booking takes its dates again, so the overlap check runs under the property lock.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var current model.Booking

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		current = found

		if current.ID == constant.Empty {
			return failure.NotFound(errBookingNotFound)
		}

		if !current.Status.IsActive() && req.Status.IsActive() {
			if _, err := s.propertyRepo.GetForUpdateTx(ctx, tx, propertyFilter(current.PropertyID), propertyModel.FieldID); err != nil {
				return err
			}

			overlapping, err := s.repo.ExistTx(ctx, tx, overlapFilter(current.PropertyID, current.CheckInDate, current.CheckOutDate, current.ID))
			if err != nil {
				return err
			}

			if overlapping {
				return failure.BadRequestFromString(errNotAvailable)
			}
		}

		return s.repo.UpdateTx(ctx, tx, statusFields(req.Status, user), filter)
	})
	if err != nil {
		if postgres.IsExclusionViolation(err) {
			return failure.BadRequestFromString(errNotAvailable)
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		return err
	}

	previous := current.Status
	current.Status = req.Status

	go func() {
		c := context.WithoutCancel(ctx)

		s.metrics.ObserveBooking(string(current.Status))
		s.publish(c, current, model.EventStatusChanged, previous)
		s.invalidateCaches(c, id)
	}()

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var current model.Booking

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		current = found

		if current.ID == constant.Empty || !canAccess(ctx, current.CustomerID) {
			return failure.NotFound(errBookingNotFound)
		}

		switch current.Status {
		case model.StatusCancelled:
			return failure.BadRequestFromString(errAlreadyCancelled)
		case model.StatusCompleted:
			return failure.BadRequestFromString(errCancelCompleted)
		}

		return s.repo.UpdateTx(ctx, tx, statusFields(model.StatusCancelled, user), filter)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to cancel booking")

		return err
	}

	previous := current.Status
	current.Status = model.StatusCancelled

	go func() {
		c := context.WithoutCancel(ctx)

		s.metrics.ObserveBooking(string(current.Status))
		s.publish(c, current, model.EventStatusChanged, previous)
		s.invalidateCaches(c, id)
	}()

	return nil
}

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	summary, err := s.repo.Summary(ctx, now.AddDate(0, 0, -recentBookingDays))
	if err != nil {
		log.Error().Err(err).Msg("failed to summarize bookings")

		return res, fmt.Errorf("failed to summarize bookings: %w", err)
	}

	res.FromModel(summary, now)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check booking existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errBookingNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

// canAccess lets staff through; customers only reach bookings linked to their account.
func canAccess(ctx context.Context, customerID *string) bool {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleCustomer {
		return true
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return user != constant.Empty && customerID != nil && *customerID == user
}

func statusFields(status model.Status, user string) map[string]any {
	return map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

func (s *serviceImpl) publish(ctx context.Context, booking model.Booking, eventType string, previous model.Status) {
	event := model.Event{
		Type:           eventType,
		BookingID:      booking.ID,
		PropertyID:     booking.PropertyID,
		CustomerEmail:  booking.CustomerEmail,
		CheckInDate:    timezone.FormatDate(booking.CheckInDate),
		CheckOutDate:   timezone.FormatDate(booking.CheckOutDate),
		Status:         string(booking.Status),
		PreviousStatus: string(previous),
		TotalPrice:     booking.TotalPrice,
		OccurredAt:     timezone.Format(timezone.Now(), time.RFC3339),
	}

	if err := s.publisher.Publish(ctx, s.cfg.Kafka.Topics.Booking, kafka.Message{Key: booking.PropertyID, Value: event}); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("event", eventType).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking cache")
	}
}
