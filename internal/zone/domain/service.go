package domain

import (
	"context"
	"errors"
)

type CreateZoneRequest struct {
	Name          string      `json:"name"`
	Country       string      `json:"country"`
	AddressName   string      `json:"address_name"`
	CenterLat     *float64    `json:"center_lat"`
	CenterLng     *float64    `json:"center_lng"`
	RadiusMeters  *float64    `json:"radius_meters"`
	PolygonPoints []ZonePoint `json:"polygon_points"`
}

type UpdateZoneRequest struct {
	ID string `json:"-"`
	CreateZoneRequest
}

// ZonePoint is the wire form of a polygon vertex.
type ZonePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Service interface {
	Create(ctx context.Context, req CreateZoneRequest) (Zone, error)
	List(ctx context.Context) ([]Zone, error)
	GetByID(ctx context.Context, id string) (Zone, error)
	Update(ctx context.Context, req UpdateZoneRequest) (Zone, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID          = errors.New("invalid_zone_id")
	ErrInvalidName        = errors.New("invalid_zone_name")
	ErrInvalidCircle      = errors.New("invalid_zone_circle")
	ErrInvalidRadius      = errors.New("invalid_zone_radius")
	ErrInvalidPolygon     = errors.New("invalid_zone_polygon")
	ErrInvalidCoordinates = errors.New("invalid_coordinates")
	ErrNotFound           = errors.New("zone_not_found")
)
