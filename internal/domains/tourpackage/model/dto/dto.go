package dto

import (
	"time"

	"atoll/internal/domains/tourpackage/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	defaultDuration     = 1
	defaultGroupSizeMin = 1
	defaultGroupSizeMax = 10
)

type DestinationRequest struct {
	LocationID   string   `json:"location_id"   validate:"required,uuid"`
	DurationDays int      `json:"duration_days" validate:"omitempty,gte=1"`
	Description  string   `json:"description"`
	Highlights   []string `json:"highlights"`
	Activities   []string `json:"activities"`
}

// ItineraryRequest describes one day. ActivityIDs are resolved to names before saving.
type ItineraryRequest struct {
	Day            int      `json:"day"            validate:"required,gte=1"`
	Title          string   `json:"title"          validate:"required,max=200"`
	Description    string   `json:"description"`
	Activities     []string `json:"activities"`
	ActivityIDs    []string `json:"activity_ids"`
	Meals          []string `json:"meals"`
	Accommodation  string   `json:"accommodation"  validate:"omitempty,max=200"`
	Transportation string   `json:"transportation" validate:"omitempty,max=200"`
}

type InclusionRequest struct {
	Category    model.InclusionCategory `json:"category"    validate:"required,enum"`
	Item        string                  `json:"item"        validate:"required,max=200"`
	Description string                  `json:"description"`
	Icon        string                  `json:"icon"        validate:"omitempty,max=100"`
}

type ActivityRequest struct {
	Name        string           `json:"name"        validate:"required,max=200"`
	Description string           `json:"description"`
	Duration    string           `json:"duration"    validate:"omitempty,max=100"`
	Difficulty  model.Difficulty `json:"difficulty"  validate:"omitempty,enum"`
	Category    string           `json:"category"    validate:"omitempty,max=100"`
	Included    *bool            `json:"included"`
	Price       string           `json:"price"       validate:"omitempty,max=100"`
}

type CreatePackageRequest struct {
	Name                  string             `json:"name"                   validate:"required,max=200"`
	Description           string             `json:"description"            validate:"required"`
	DetailedDescription   string             `json:"detailed_description"`
	Price                 float64            `json:"price"                  validate:"required,gt=0"`
	OriginalPrice         *float64           `json:"original_price"         validate:"omitempty,gt=0"`
	DiscountPercentage    *float64           `json:"discount_percentage"    validate:"omitempty,gte=0,lte=100"`
	Duration              int                `json:"duration"               validate:"omitempty,gte=1"`
	IsFeatured            bool               `json:"is_featured"`
	StartDate             string             `json:"start_date"             validate:"omitempty,date"`
	EndDate               string             `json:"end_date"               validate:"omitempty,date"`
	Category              string             `json:"category"               validate:"omitempty,max=100"`
	DifficultyLevel       model.Difficulty   `json:"difficulty_level"       validate:"omitempty,enum"`
	GroupSizeMin          int                `json:"group_size_min"         validate:"omitempty,gte=1"`
	GroupSizeMax          int                `json:"group_size_max"         validate:"omitempty,gte=1"`
	AccommodationType     string             `json:"accommodation_type"     validate:"omitempty,max=100"`
	RoomType              string             `json:"room_type"              validate:"omitempty,max=100"`
	MealPlan              string             `json:"meal_plan"              validate:"omitempty,max=100"`
	TransportationDetails string             `json:"transportation_details"`
	AirportTransfers      bool               `json:"airport_transfers"`
	BestTimeToVisit       string             `json:"best_time_to_visit"     validate:"omitempty,max=200"`
	WeatherInfo           string             `json:"weather_info"`
	WhatToBring           []string           `json:"what_to_bring"`
	ImportantNotes        []string           `json:"important_notes"`
	BookingTerms          string             `json:"booking_terms"`
	CancellationPolicy    string             `json:"cancellation_policy"`
	PaymentTerms          string             `json:"payment_terms"`
	Images                []string           `json:"images"                 validate:"omitempty,dive,url"`
	PropertyIDs           []string           `json:"property_ids"           validate:"omitempty,unique,dive,uuid"`
	Destinations          []DestinationRequest `json:"destinations"         validate:"omitempty,dive"`
	Itinerary             []ItineraryRequest `json:"itinerary"              validate:"omitempty,unique=Day,dive"`
	Inclusions            []InclusionRequest `json:"inclusions"             validate:"omitempty,dive"`
	Activities            []ActivityRequest  `json:"activities"             validate:"omitempty,dive"`
	Experiences           []ActivityRequest  `json:"experiences"            validate:"omitempty,dive"`
}

func (c *CreatePackageRequest) ToModel(user string) (model.Package, error) {
	startDate, err := optionalDate(c.StartDate)
	if err != nil {
		return model.Package{}, err
	}

	endDate, err := optionalDate(c.EndDate)
	if err != nil {
		return model.Package{}, err
	}

	pkg := model.Package{
		ID:                    uuid.NewString(),
		Name:                  c.Name,
		Description:           c.Description,
		DetailedDescription:   c.DetailedDescription,
		Price:                 c.Price,
		OriginalPrice:         c.OriginalPrice,
		DiscountPercentage:    c.DiscountPercentage,
		Duration:              orDefault(c.Duration, defaultDuration),
		IsFeatured:            c.IsFeatured,
		StartDate:             startDate,
		EndDate:               endDate,
		Category:              c.Category,
		DifficultyLevel:       c.DifficultyLevel,
		GroupSizeMin:          orDefault(c.GroupSizeMin, defaultGroupSizeMin),
		GroupSizeMax:          orDefault(c.GroupSizeMax, defaultGroupSizeMax),
		AccommodationType:     c.AccommodationType,
		RoomType:              c.RoomType,
		MealPlan:              c.MealPlan,
		TransportationDetails: c.TransportationDetails,
		AirportTransfers:      c.AirportTransfers,
		BestTimeToVisit:       c.BestTimeToVisit,
		WeatherInfo:           c.WeatherInfo,
		WhatToBring:           stringArray(c.WhatToBring),
		ImportantNotes:        stringArray(c.ImportantNotes),
		BookingTerms:          c.BookingTerms,
		CancellationPolicy:    c.CancellationPolicy,
		PaymentTerms:          c.PaymentTerms,
		Images:                stringArray(c.Images),
		Metadata:              gModel.NewMetadata(timezone.Now(), user),
	}

	if pkg.DifficultyLevel == "" {
		pkg.DifficultyLevel = model.DifficultyEasy
	}

	return pkg, nil
}

// UpdatePackageRequest patches the scalar fields that are set. A child list that is
// present (even empty) replaces the whole collection; an absent one is left untouched.
type UpdatePackageRequest struct {
	Name                  string            `db:"name"                   json:"name"                   validate:"omitempty,max=200"`
	Description           *string           `db:"description"            json:"description"`
	DetailedDescription   *string           `db:"detailed_description"   json:"detailed_description"`
	Price                 *float64          `db:"price"                  json:"price"                  validate:"omitempty,gt=0"`
	OriginalPrice         *float64          `db:"original_price"         json:"original_price"         validate:"omitempty,gt=0"`
	DiscountPercentage    *float64          `db:"discount_percentage"    json:"discount_percentage"    validate:"omitempty,gte=0,lte=100"`
	Duration              *int              `db:"duration"               json:"duration"               validate:"omitempty,gte=1"`
	IsFeatured            *bool             `db:"is_featured"            json:"is_featured"`
	StartDate             *string           `db:"start_date"             json:"start_date"             validate:"omitempty,date"`
	EndDate               *string           `db:"end_date"               json:"end_date"               validate:"omitempty,date"`
	Category              *string           `db:"category"               json:"category"               validate:"omitempty,max=100"`
	DifficultyLevel       *model.Difficulty `db:"difficulty_level"       json:"difficulty_level"       validate:"omitempty,enum"`
	GroupSizeMin          *int              `db:"group_size_min"         json:"group_size_min"         validate:"omitempty,gte=1"`
	GroupSizeMax          *int              `db:"group_size_max"         json:"group_size_max"         validate:"omitempty,gte=1"`
	AccommodationType     *string           `db:"accommodation_type"     json:"accommodation_type"     validate:"omitempty,max=100"`
	RoomType              *string           `db:"room_type"              json:"room_type"              validate:"omitempty,max=100"`
	MealPlan              *string           `db:"meal_plan"              json:"meal_plan"              validate:"omitempty,max=100"`
	TransportationDetails *string           `db:"transportation_details" json:"transportation_details"`
	AirportTransfers      *bool             `db:"airport_transfers"      json:"airport_transfers"`
	BestTimeToVisit       *string           `db:"best_time_to_visit"     json:"best_time_to_visit"     validate:"omitempty,max=200"`
	WeatherInfo           *string           `db:"weather_info"           json:"weather_info"`
	WhatToBring           *pq.StringArray   `db:"what_to_bring"          json:"what_to_bring"`
	ImportantNotes        *pq.StringArray   `db:"important_notes"        json:"important_notes"`
	BookingTerms          *string           `db:"booking_terms"          json:"booking_terms"`
	CancellationPolicy    *string           `db:"cancellation_policy"    json:"cancellation_policy"`
	PaymentTerms          *string           `db:"payment_terms"          json:"payment_terms"`
	Images                *pq.StringArray   `db:"images"                 json:"images"                 validate:"omitempty,dive,url"`

	PropertyIDs  *[]string             `json:"property_ids" validate:"omitempty,unique,dive,uuid"`
	Destinations *[]DestinationRequest `json:"destinations" validate:"omitempty,dive"`
	Itinerary    *[]ItineraryRequest   `json:"itinerary"    validate:"omitempty,unique=Day,dive"`
	Inclusions   *[]InclusionRequest   `json:"inclusions"   validate:"omitempty,dive"`
	Activities   *[]ActivityRequest    `json:"activities"   validate:"omitempty,dive"`
	Experiences  *[]ActivityRequest    `json:"experiences"  validate:"omitempty,dive"`
}

func PropertyModels(packageID string, propertyIDs []string) []model.PackageProperty {
	links := make([]model.PackageProperty, len(propertyIDs))
	for i, propertyID := range propertyIDs {
		links[i] = model.PackageProperty{PackageID: packageID, PropertyID: propertyID}
	}

	return links
}

// DestinationModels keeps the payload order as the destination position.
func DestinationModels(packageID string, reqs []DestinationRequest) []model.Destination {
	destinations := make([]model.Destination, len(reqs))
	for i, req := range reqs {
		destinations[i] = model.Destination{
			ID:           uuid.NewString(),
			PackageID:    packageID,
			LocationID:   req.LocationID,
			DurationDays: orDefault(req.DurationDays, defaultDuration),
			Description:  req.Description,
			Highlights:   stringArray(req.Highlights),
			Activities:   stringArray(req.Activities),
			Position:     i,
		}
	}

	return destinations
}

func InclusionModels(packageID string, reqs []InclusionRequest) []model.Inclusion {
	inclusions := make([]model.Inclusion, len(reqs))
	for i, req := range reqs {
		inclusions[i] = model.Inclusion{
			ID:          uuid.NewString(),
			PackageID:   packageID,
			Category:    req.Category,
			Item:        req.Item,
			Description: req.Description,
			Icon:        req.Icon,
		}
	}

	return inclusions
}

// ActivityModels converts activity payloads; experience rows always get the experience category.
func ActivityModels(packageID string, reqs []ActivityRequest, experience bool) []model.Activity {
	activities := make([]model.Activity, len(reqs))
	for i, req := range reqs {
		included := true
		if req.Included != nil {
			included = *req.Included
		}

		difficulty := req.Difficulty
		if difficulty == "" {
			difficulty = model.DifficultyEasy
		}

		category := req.Category
		if experience {
			category = model.CategoryExperience
		}

		activities[i] = model.Activity{
			ID:          uuid.NewString(),
			PackageID:   packageID,
			Name:        req.Name,
			Description: req.Description,
			Duration:    req.Duration,
			Difficulty:  difficulty,
			Category:    category,
			Included:    included,
			Price:       req.Price,
		}
	}

	return activities
}

type PropertyResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PropertyType  string  `json:"property_type"`
	PricePerNight float64 `json:"price_per_night"`
}

type DestinationResponse struct {
	ID           string   `json:"id"`
	LocationID   string   `json:"location_id"`
	LocationName string   `json:"location_name"`
	Island       string   `json:"island"`
	DurationDays int      `json:"duration_days"`
	Description  string   `json:"description"`
	Highlights   []string `json:"highlights"`
	Activities   []string `json:"activities"`
	Order        int      `json:"order"`
}

type ActivityResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
	Included    bool   `json:"included"`
	Price       string `json:"price"`
}

func (r *ActivityResponse) FromModel(model model.Activity) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Duration = model.Duration
	r.Difficulty = string(model.Difficulty)
	r.Category = model.Category
	r.Included = model.Included
	r.Price = model.Price
}

type ItineraryDayResponse struct {
	ID              string             `json:"id"`
	Day             int                `json:"day"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Activities      []string           `json:"activities"`
	ActivityDetails []ActivityResponse `json:"activity_details"`
	Meals           []string           `json:"meals"`
	Accommodation   string             `json:"accommodation"`
	Transportation  string             `json:"transportation"`
}

type InclusionResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Item        string `json:"item"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type PackageSummaryResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"original_price"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	Duration           int      `json:"duration"`
	IsFeatured         bool     `json:"is_featured"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	Category           string   `json:"category"`
	DifficultyLevel    string   `json:"difficulty_level"`
	GroupSizeMin       int      `json:"group_size_min"`
	GroupSizeMax       int      `json:"group_size_max"`
	Images             []string `json:"images"`
	gDto.Metadata
}

func (r *PackageSummaryResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.OriginalPrice = model.OriginalPrice
	r.DiscountPercentage = model.DiscountPercentage
	r.Duration = model.Duration
	r.IsFeatured = model.IsFeatured
	r.StartDate = formatOptionalDate(model.StartDate)
	r.EndDate = formatOptionalDate(model.EndDate)
	r.Category = model.Category
	r.DifficultyLevel = string(model.DifficultyLevel)
	r.GroupSizeMin = model.GroupSizeMin
	r.GroupSizeMax = model.GroupSizeMax
	r.Images = append([]string{}, model.Images...)
	r.Metadata.FromModel(model.Metadata)
}

type PackageResponse struct {
	PackageSummaryResponse
	DetailedDescription   string                 `json:"detailed_description"`
	AccommodationType     string                 `json:"accommodation_type"`
	RoomType              string                 `json:"room_type"`
	MealPlan              string                 `json:"meal_plan"`
	TransportationDetails string                 `json:"transportation_details"`
	AirportTransfers      bool                   `json:"airport_transfers"`
	BestTimeToVisit       string                 `json:"best_time_to_visit"`
	WeatherInfo           string                 `json:"weather_info"`
	WhatToBring           []string               `json:"what_to_bring"`
	ImportantNotes        []string               `json:"important_notes"`
	BookingTerms          string                 `json:"booking_terms"`
	CancellationPolicy    string                 `json:"cancellation_policy"`
	PaymentTerms          string                 `json:"payment_terms"`
	Properties            []PropertyResponse     `json:"properties"`
	Destinations          []DestinationResponse  `json:"destinations"`
	Itinerary             []ItineraryDayResponse `json:"itinerary"`
	Inclusions            []InclusionResponse    `json:"inclusions"`
	Activities            []ActivityResponse     `json:"activities"`
	Experiences           []ActivityResponse     `json:"experiences"`
}

// Composition is everything a package detail is assembled from.
type Composition struct {
	Package      model.Package
	Properties   []model.PackageProperty
	Destinations []model.Destination
	Itinerary    []model.ItineraryDay
	Inclusions   []model.Inclusion
	Activities   []model.Activity
}

func (r *PackageResponse) FromComposition(c Composition) {
	r.PackageSummaryResponse.FromModel(c.Package)
	r.DetailedDescription = c.Package.DetailedDescription
	r.AccommodationType = c.Package.AccommodationType
	r.RoomType = c.Package.RoomType
	r.MealPlan = c.Package.MealPlan
	r.TransportationDetails = c.Package.TransportationDetails
	r.AirportTransfers = c.Package.AirportTransfers
	r.BestTimeToVisit = c.Package.BestTimeToVisit
	r.WeatherInfo = c.Package.WeatherInfo
	r.WhatToBring = append([]string{}, c.Package.WhatToBring...)
	r.ImportantNotes = append([]string{}, c.Package.ImportantNotes...)
	r.BookingTerms = c.Package.BookingTerms
	r.CancellationPolicy = c.Package.CancellationPolicy
	r.PaymentTerms = c.Package.PaymentTerms

	r.Properties = make([]PropertyResponse, len(c.Properties))
	for i, property := range c.Properties {
		r.Properties[i] = PropertyResponse{
			ID:            property.PropertyID,
			Name:          property.PropertyName,
			PropertyType:  property.PropertyType,
			PricePerNight: property.PricePerNight,
		}
	}

	r.Destinations = make([]DestinationResponse, len(c.Destinations))
	for i, destination := range c.Destinations {
		r.Destinations[i] = DestinationResponse{
			ID:           destination.ID,
			LocationID:   destination.LocationID,
			LocationName: destination.LocationName,
			Island:       destination.Island,
			DurationDays: destination.DurationDays,
			Description:  destination.Description,
			Highlights:   append([]string{}, destination.Highlights...),
			Activities:   append([]string{}, destination.Activities...),
			Order:        destination.Position,
		}
	}

	byName := make(map[string]ActivityResponse, len(c.Activities))
	r.Activities = []ActivityResponse{}
	r.Experiences = []ActivityResponse{}

	for _, activity := range c.Activities {
		var res ActivityResponse
		res.FromModel(activity)

		if _, ok := byName[shared.NormalizeName(activity.Name)]; !ok {
			byName[shared.NormalizeName(activity.Name)] = res
		}

		if activity.Category == model.CategoryExperience {
			r.Experiences = append(r.Experiences, res)
		} else {
			r.Activities = append(r.Activities, res)
		}
	}

	r.Itinerary = make([]ItineraryDayResponse, len(c.Itinerary))
	for i, day := range c.Itinerary {
		details := []ActivityResponse{}

		for _, name := range day.Activities {
			if activity, ok := byName[shared.NormalizeName(name)]; ok {
				details = append(details, activity)
			}
		}

		r.Itinerary[i] = ItineraryDayResponse{
			ID:              day.ID,
			Day:             day.Day,
			Title:           day.Title,
			Description:     day.Description,
			Activities:      append([]string{}, day.Activities...),
			ActivityDetails: details,
			Meals:           append([]string{}, day.Meals...),
			Accommodation:   day.Accommodation,
			Transportation:  day.Transportation,
		}
	}

	r.Inclusions = make([]InclusionResponse, len(c.Inclusions))
	for i, inclusion := range c.Inclusions {
		r.Inclusions[i] = InclusionResponse{
			ID:          inclusion.ID,
			Category:    string(inclusion.Category),
			Item:        inclusion.Item,
			Description: inclusion.Description,
			Icon:        inclusion.Icon,
		}
	}
}

type GetPackagesResponse struct {
	Packages  []PackageSummaryResponse `json:"packages"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageSummaryResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}

func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	date, err := timezone.ParseDate(value)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

func formatOptionalDate(value *time.Time) string {
	if value == nil {
		return ""
	}

	return timezone.FormatDate(*value)
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}

	return pq.StringArray(values)
}

func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}

	return value
}
