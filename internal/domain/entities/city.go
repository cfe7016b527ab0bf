package entities

import (
	"time"

	"github.com/zatekoja/venue-explorer/pkg/geo"
)

// City represents a city venues belong to
type City struct {
	ID            int64          `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	StateProvince string         `json:"state_province" db:"state_province"`
	Country       string         `json:"country" db:"country"`
	Coordinates   geo.Coordinate `json:"coordinates" db:"-"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// Region is a state/province rollup over cities. Regions are derived,
// not stored: each distinct (state_province, country) pair is one.
type Region struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	CityCount   int    `json:"city_count"`
	VenueCount  int    `json:"venue_count"`
	DisplayName string `json:"display_name"`
}

// RegionCity decorates a city with its venue count for region listings
type RegionCity struct {
	City
	VenueCount int `json:"venue_count"`
}
