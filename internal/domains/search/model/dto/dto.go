package dto

import (
	locationDto "atoll/internal/domains/location/model/dto"
	locationModel "atoll/internal/domains/location/model"
	propertyDto "atoll/internal/domains/property/model/dto"
	propertyModel "atoll/internal/domains/property/model"
	packageDto "atoll/internal/domains/tourpackage/model/dto"
	packageModel "atoll/internal/domains/tourpackage/model"
)

type SearchResponse struct {
	Query      string                              `json:"query"`
	Properties []propertyDto.PropertyResponse      `json:"properties"`
	Packages   []packageDto.PackageSummaryResponse `json:"packages"`
	Locations  []locationDto.LocationResponse      `json:"locations"`
}

func (r *SearchResponse) FromModels(
	query string,
	properties []propertyModel.Property,
	packages []packageModel.Package,
	locations []locationModel.Location,
) {
	r.Query = query

	r.Properties = make([]propertyDto.PropertyResponse, len(properties))
	for idx, property := range properties {
		r.Properties[idx].FromModel(property, nil)
	}

	r.Packages = make([]packageDto.PackageSummaryResponse, len(packages))
	for idx, pkg := range packages {
		r.Packages[idx].FromModel(pkg)
	}

	r.Locations = make([]locationDto.LocationResponse, len(locations))
	for idx, location := range locations {
		r.Locations[idx].FromModel(location)
	}
}
