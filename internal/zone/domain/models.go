package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/geo"
	"gorm.io/datatypes"
)

// Zone is a geofenced area. A zone may carry a circle descriptor, a
// polygon descriptor, both, or neither; with neither descriptor the
// zone can never match by location.
type Zone struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Country     string       `gorm:"type:text" json:"country,omitempty"`
	AddressName string       `gorm:"type:text" json:"address_name,omitempty"`

	CenterLat    *float64 `gorm:"column:center_lat" json:"center_lat,omitempty"`
	CenterLng    *float64 `gorm:"column:center_lng" json:"center_lng,omitempty"`
	RadiusMeters *float64 `gorm:"column:radius_meters" json:"radius_meters,omitempty"`

	PolygonPoints datatypes.JSONSlice[geo.Point] `gorm:"type:json" json:"polygon_points,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Zone) TableName() string { return "zones" }

func (z *Zone) hasCircle() bool {
	return z.CenterLat != nil && z.CenterLng != nil && z.RadiusMeters != nil
}

func (z *Zone) hasPolygon() bool {
	return len(z.PolygonPoints) >= 3
}

// HasGeofence reports whether the zone carries at least one geofence
// descriptor.
func (z *Zone) HasGeofence() bool {
	return z.hasCircle() || z.hasPolygon()
}

// Contains reports whether p lies inside the zone. When both
// descriptors are present either test matching is sufficient (union
// semantics). Pure; safe for concurrent use.
func (z *Zone) Contains(p geo.Point) bool {
	if z.hasCircle() {
		center := geo.Point{Lat: *z.CenterLat, Lng: *z.CenterLng}
		if geo.InCircle(p, center, *z.RadiusMeters) {
			return true
		}
	}
	if z.hasPolygon() {
		if geo.InPolygon(p, z.PolygonPoints) {
			return true
		}
	}
	return false
}

// Validate enforces the descriptor invariants.
func (z *Zone) Validate() error {
	if z.Name == "" {
		return ErrInvalidName
	}
	if z.CenterLat != nil || z.CenterLng != nil || z.RadiusMeters != nil {
		if z.CenterLat == nil || z.CenterLng == nil || z.RadiusMeters == nil {
			return ErrInvalidCircle
		}
		center := geo.Point{Lat: *z.CenterLat, Lng: *z.CenterLng}
		if !center.Valid() {
			return ErrInvalidCoordinates
		}
		if *z.RadiusMeters < 0 {
			return ErrInvalidRadius
		}
	}
	if len(z.PolygonPoints) > 0 {
		if len(z.PolygonPoints) < 3 {
			return ErrInvalidPolygon
		}
		for _, vertex := range z.PolygonPoints {
			if !vertex.Valid() {
				return ErrInvalidCoordinates
			}
		}
	}
	return nil
}
