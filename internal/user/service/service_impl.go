package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/geotoll/internal/user/domain"
	"github.com/smallbiznis/geotoll/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return domain.User{}, domain.ErrInvalidUsername
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "user"
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:        s.genID.Generate(),
		Username:  username,
		Email:     email,
		Role:      role,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	userID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.User{}, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		if item != nil {
			users = append(users, *item)
		}
	}
	return users, nil
}

func (s *Service) GetBalance(ctx context.Context, id string) (domain.BalanceResponse, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.BalanceResponse{}, err
	}
	return domain.BalanceResponse{
		UserID:        user.ID.String(),
		Balance:       user.Balance,
		LastCheckInAt: user.LastCheckInAt,
	}, nil
}
