package dto

import (
	mediaDto "atoll/internal/domains/media/model/dto"
	pageDto "atoll/internal/domains/page/model/dto"
)

type CatalogStats struct {
	Total     int `json:"total"`
	Featured  int `json:"featured"`
	ThisMonth int `json:"this_month"`
}

type BookingStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	ThisWeek  int     `json:"this_week"`
	ThisMonth int     `json:"this_month"`
	Revenue   float64 `json:"revenue"`
}

type ReviewStats struct {
	Total         int     `json:"total"`
	Approved      int     `json:"approved"`
	AverageRating float64 `json:"average_rating"`
	ThisMonth     int     `json:"this_month"`
}

type CustomerStats struct {
	Total     int `json:"total"`
	ThisMonth int `json:"this_month"`
}

// StatsResponse is the staff dashboard overview.
type StatsResponse struct {
	Properties  CatalogStats  `json:"properties"`
	Packages    CatalogStats  `json:"packages"`
	Bookings    BookingStats  `json:"bookings"`
	Reviews     ReviewStats   `json:"reviews"`
	Customers   CustomerStats `json:"customers"`
	LastUpdated string        `json:"last_updated"`
}

type ContentStatsResponse struct {
	TotalPages     int                      `json:"total_pages"`
	PublishedPages int                      `json:"published_pages"`
	DraftPages     int                      `json:"draft_pages"`
	TotalMedia     int                      `json:"total_media"`
	TotalMenus     int                      `json:"total_menus"`
	TotalRedirects int                      `json:"total_redirects"`
	RecentPages    []pageDto.PageResponse   `json:"recent_pages"`
	RecentMedia    []mediaDto.MediaResponse `json:"recent_media"`
}
