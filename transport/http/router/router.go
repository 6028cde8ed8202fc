package router

import (
	"atoll/internal/handlers/amenity"
	"atoll/internal/handlers/auth"
	"atoll/internal/handlers/availability"
	"atoll/internal/handlers/booking"
	"atoll/internal/handlers/content"
	"atoll/internal/handlers/customer"
	"atoll/internal/handlers/dashboard"
	"atoll/internal/handlers/location"
	"atoll/internal/handlers/media"
	"atoll/internal/handlers/menu"
	"atoll/internal/handlers/page"
	"atoll/internal/handlers/property"
	"atoll/internal/handlers/redirect"
	"atoll/internal/handlers/review"
	"atoll/internal/handlers/search"
	"atoll/internal/handlers/tourpackage"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Customer     customer.Handler
	Location     location.Handler
	Amenity      amenity.Handler
	Property     property.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Package      tourpackage.Handler
	Page         page.Handler
	Media        media.Handler
	Content      content.Handler
	Review       review.Handler
	Search       search.Handler
	Menu         menu.Handler
	Redirect     redirect.Handler
	Dashboard    dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Location.Router(routerGroup)
		r.DomainHandlers.Amenity.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Package.Router(routerGroup)
		r.DomainHandlers.Page.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
		r.DomainHandlers.Content.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Search.Router(routerGroup)
		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Redirect.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
