package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/geotoll/internal/geo"
	"github.com/smallbiznis/geotoll/internal/zone/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("zone.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateZoneRequest) (domain.Zone, error) {
	now := time.Now().UTC()
	zone := domain.Zone{
		ID:            s.genID.Generate(),
		Name:          strings.TrimSpace(req.Name),
		Country:       strings.TrimSpace(req.Country),
		AddressName:   strings.TrimSpace(req.AddressName),
		CenterLat:     req.CenterLat,
		CenterLng:     req.CenterLng,
		RadiusMeters:  req.RadiusMeters,
		PolygonPoints: toPolygon(req.PolygonPoints),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := zone.Validate(); err != nil {
		return domain.Zone{}, err
	}

	if err := s.repo.Insert(ctx, s.db, &zone); err != nil {
		return domain.Zone{}, err
	}
	return zone, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Zone, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	zones := make([]domain.Zone, 0, len(items))
	for _, item := range items {
		if item != nil {
			zones = append(zones, *item)
		}
	}
	return zones, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Zone, error) {
	zoneID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Zone{}, domain.ErrInvalidID
	}

	zone, err := s.repo.FindByID(ctx, s.db, zoneID)
	if err != nil {
		return domain.Zone{}, err
	}
	if zone == nil {
		return domain.Zone{}, domain.ErrNotFound
	}
	return *zone, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateZoneRequest) (domain.Zone, error) {
	current, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Zone{}, err
	}

	current.Name = strings.TrimSpace(req.Name)
	current.Country = strings.TrimSpace(req.Country)
	current.AddressName = strings.TrimSpace(req.AddressName)
	current.CenterLat = req.CenterLat
	current.CenterLng = req.CenterLng
	current.RadiusMeters = req.RadiusMeters
	current.PolygonPoints = toPolygon(req.PolygonPoints)
	current.UpdatedAt = time.Now().UTC()

	if err := current.Validate(); err != nil {
		return domain.Zone{}, err
	}

	if err := s.repo.Update(ctx, s.db, &current); err != nil {
		return domain.Zone{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	zoneID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, zoneID)
}

func toPolygon(points []domain.ZonePoint) datatypes.JSONSlice[geo.Point] {
	if len(points) == 0 {
		return nil
	}
	vertices := make([]geo.Point, 0, len(points))
	for _, pt := range points {
		vertices = append(vertices, geo.Point{Lat: pt.Lat, Lng: pt.Lng})
	}
	return datatypes.NewJSONSlice(vertices)
}
