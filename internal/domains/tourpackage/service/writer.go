package service

import (
	"context"
	"strconv"

	"atoll/internal/domains/tourpackage/model"
	"atoll/internal/domains/tourpackage/model/dto"
	"atoll/shared"
	gDto "atoll/shared/dto"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// children holds the child collections of a write; a nil entry leaves that collection alone.
type children struct {
	PropertyIDs  *[]string
	Destinations *[]dto.DestinationRequest
	Itinerary    *[]dto.ItineraryRequest
	Inclusions   *[]dto.InclusionRequest
	Activities   *[]dto.ActivityRequest
	Experiences  *[]dto.ActivityRequest
}

type writer struct {
	svc       *serviceImpl
	tx        *sqlx.Tx
	packageID string
	resolver  *activityResolver
}

// write stores every present collection. With replace set, the existing rows of a present
// collection are deleted first. Activities go before the itinerary so new rows can be referenced.
func (w writer) write(ctx context.Context, c children, replace bool) error {
	if c.PropertyIDs != nil {
		if err := w.replaceProperties(ctx, *c.PropertyIDs, replace); err != nil {
			return err
		}
	}

	if c.Activities != nil {
		if err := w.replaceActivities(ctx, *c.Activities, false, replace); err != nil {
			return err
		}
	}

	if c.Experiences != nil {
		if err := w.replaceActivities(ctx, *c.Experiences, true, replace); err != nil {
			return err
		}
	}

	if c.Destinations != nil {
		if err := w.replaceDestinations(ctx, *c.Destinations, replace); err != nil {
			return err
		}
	}

	if c.Itinerary != nil {
		if err := w.replaceItinerary(ctx, *c.Itinerary, replace); err != nil {
			return err
		}
	}

	if c.Inclusions != nil {
		if err := w.replaceInclusions(ctx, *c.Inclusions, replace); err != nil {
			return err
		}
	}

	return nil
}

func (w writer) replaceProperties(ctx context.Context, propertyIDs []string, replace bool) error {
	if replace {
		if err := w.svc.propertyRepo.DeleteTx(ctx, w.tx, childFilter(w.packageID, model.PropertyTableName)); err != nil {
			return err
		}
	}

	return w.svc.propertyRepo.InsertBulkTx(ctx, w.tx, dto.PropertyModels(w.packageID, propertyIDs))
}

func (w writer) replaceActivities(ctx context.Context, reqs []dto.ActivityRequest, experience, replace bool) error {
	if replace {
		operator := gDto.FilterOperatorNotEq
		if experience {
			operator = gDto.FilterOperatorEq
		}

		filter := childFilter(w.packageID, model.ActivityTableName).Add(gDto.Filter{
			Field:    model.FieldCategory,
			Value:    model.CategoryExperience,
			Operator: operator,
			Table:    model.ActivityTableName,
		})

		if err := w.svc.activityRepo.DeleteTx(ctx, w.tx, filter); err != nil {
			return err
		}
	}

	activities := dto.ActivityModels(w.packageID, reqs, experience)
	w.resolver.track(activities)

	return w.svc.activityRepo.InsertBulkTx(ctx, w.tx, activities)
}

func (w writer) replaceDestinations(ctx context.Context, reqs []dto.DestinationRequest, replace bool) error {
	if replace {
		if err := w.svc.destinationRepo.DeleteTx(ctx, w.tx, childFilter(w.packageID, model.DestinationTableName)); err != nil {
			return err
		}
	}

	return w.svc.destinationRepo.InsertBulkTx(ctx, w.tx, dto.DestinationModels(w.packageID, reqs))
}

func (w writer) replaceItinerary(ctx context.Context, reqs []dto.ItineraryRequest, replace bool) error {
	if replace {
		if err := w.svc.itineraryRepo.DeleteTx(ctx, w.tx, childFilter(w.packageID, model.ItineraryTableName)); err != nil {
			return err
		}
	}

	days := make([]model.ItineraryDay, len(reqs))
	for i, req := range reqs {
		names := append(append([]string{}, req.Activities...), w.resolver.resolve(req.ActivityIDs)...)

		days[i] = model.ItineraryDay{
			ID:             uuid.NewString(),
			PackageID:      w.packageID,
			Day:            req.Day,
			Title:          req.Title,
			Description:    req.Description,
			Activities:     pq.StringArray(shared.DedupeNames(names)),
			Meals:          pq.StringArray(append([]string{}, req.Meals...)),
			Accommodation:  req.Accommodation,
			Transportation: req.Transportation,
		}
	}

	return w.svc.itineraryRepo.InsertBulkTx(ctx, w.tx, days)
}

func (w writer) replaceInclusions(ctx context.Context, reqs []dto.InclusionRequest, replace bool) error {
	if replace {
		if err := w.svc.inclusionRepo.DeleteTx(ctx, w.tx, childFilter(w.packageID, model.InclusionTableName)); err != nil {
			return err
		}
	}

	return w.svc.inclusionRepo.InsertBulkTx(ctx, w.tx, dto.InclusionModels(w.packageID, reqs))
}

// activityResolver maps itinerary activity ids to names: known rows first, then a
// 1-based position into the request's activities payload.
type activityResolver struct {
	names   map[string]string
	payload []dto.ActivityRequest
}

func newActivityResolver(existing []model.Activity, payload []dto.ActivityRequest) *activityResolver {
	r := &activityResolver{names: make(map[string]string, len(existing)), payload: payload}
	r.track(existing)

	return r
}

func (r *activityResolver) track(activities []model.Activity) {
	for _, activity := range activities {
		r.names[activity.ID] = activity.Name
	}
}

func (r *activityResolver) resolve(ids []string) []string {
	names := make([]string, 0, len(ids))

	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			names = append(names, name)
			continue
		}

		position, err := strconv.Atoi(id)
		if err == nil && position >= 1 && position <= len(r.payload) {
			names = append(names, r.payload[position-1].Name)
			continue
		}

		log.Warn().Str("activity_id", id).Msg("skipping unresolved itinerary activity")
	}

	return names
}
