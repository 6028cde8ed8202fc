//go:build wireinject
// +build wireinject

package di

import (
	"atoll/config"
	"atoll/infras/jwt"
	"atoll/infras/kafka"
	"atoll/infras/metrics"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/infras/redis"
	"atoll/infras/s3"
	"atoll/permissions"
	"atoll/shared/cache"
	"atoll/transport/http"
	"atoll/transport/http/middleware"
	"atoll/transport/http/router"

	"github.com/google/wire"

	amenityRepository "atoll/internal/domains/amenity/repository"
	amenityService "atoll/internal/domains/amenity/service"
	authService "atoll/internal/domains/auth/service"
	availabilityRepository "atoll/internal/domains/availability/repository"
	availabilityService "atoll/internal/domains/availability/service"
	bookingRepository "atoll/internal/domains/booking/repository"
	bookingService "atoll/internal/domains/booking/service"
	contentRepository "atoll/internal/domains/content/repository"
	contentService "atoll/internal/domains/content/service"
	customerRepository "atoll/internal/domains/customer/repository"
	customerService "atoll/internal/domains/customer/service"
	dashboardService "atoll/internal/domains/dashboard/service"
	locationRepository "atoll/internal/domains/location/repository"
	locationService "atoll/internal/domains/location/service"
	mediaRepository "atoll/internal/domains/media/repository"
	mediaService "atoll/internal/domains/media/service"
	menuRepository "atoll/internal/domains/menu/repository"
	menuService "atoll/internal/domains/menu/service"
	pageRepository "atoll/internal/domains/page/repository"
	pageService "atoll/internal/domains/page/service"
	propertyRepository "atoll/internal/domains/property/repository"
	propertyService "atoll/internal/domains/property/service"
	redirectRepository "atoll/internal/domains/redirect/repository"
	redirectService "atoll/internal/domains/redirect/service"
	reviewRepository "atoll/internal/domains/review/repository"
	reviewService "atoll/internal/domains/review/service"
	searchService "atoll/internal/domains/search/service"
	packageRepository "atoll/internal/domains/tourpackage/repository"
	packageService "atoll/internal/domains/tourpackage/service"

	amenityHandler "atoll/internal/handlers/amenity"
	authHandler "atoll/internal/handlers/auth"
	availabilityHandler "atoll/internal/handlers/availability"
	bookingHandler "atoll/internal/handlers/booking"
	contentHandler "atoll/internal/handlers/content"
	customerHandler "atoll/internal/handlers/customer"
	dashboardHandler "atoll/internal/handlers/dashboard"
	locationHandler "atoll/internal/handlers/location"
	mediaHandler "atoll/internal/handlers/media"
	menuHandler "atoll/internal/handlers/menu"
	pageHandler "atoll/internal/handlers/page"
	propertyHandler "atoll/internal/handlers/property"
	redirectHandler "atoll/internal/handlers/redirect"
	reviewHandler "atoll/internal/handlers/review"
	searchHandler "atoll/internal/handlers/search"
	packageHandler "atoll/internal/handlers/tourpackage"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
	authService.New,
)

var catalogDomain = wire.NewSet(
	locationRepository.New,
	locationService.New,
	amenityRepository.New,
	amenityService.New,
	propertyRepository.New,
	propertyRepository.NewAmenity,
	propertyService.New,
	availabilityRepository.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var packageDomain = wire.NewSet(
	packageRepository.New,
	packageRepository.NewProperty,
	packageRepository.NewDestination,
	packageRepository.NewItinerary,
	packageRepository.NewInclusion,
	packageRepository.NewActivity,
	packageService.New,
)

var engagementDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
	searchService.New,
)

var cmsDomain = wire.NewSet(
	pageRepository.New,
	pageRepository.NewBlock,
	pageRepository.NewVersion,
	pageRepository.NewReview,
	pageRepository.NewThread,
	pageRepository.NewComment,
	pageService.New,
	mediaRepository.New,
	mediaService.New,
	contentRepository.NewSection,
	contentRepository.NewTranslation,
	contentService.New,
	menuRepository.New,
	menuRepository.NewItem,
	menuService.New,
	redirectRepository.New,
	redirectService.New,
)

var dashboardDomain = wire.NewSet(
	wire.Struct(new(dashboardService.Repositories), "*"),
	dashboardService.New,
)

var domains = wire.NewSet(
	customerDomain,
	catalogDomain,
	bookingDomain,
	packageDomain,
	engagementDomain,
	cmsDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	customerHandler.New,
	locationHandler.New,
	amenityHandler.New,
	propertyHandler.New,
	availabilityHandler.New,
	bookingHandler.New,
	packageHandler.New,
	pageHandler.New,
	mediaHandler.New,
	contentHandler.New,
	reviewHandler.New,
	searchHandler.New,
	menuHandler.New,
	redirectHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		newServer,
	)

	return &http.HTTP{}
}
