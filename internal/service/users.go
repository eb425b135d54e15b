package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poskasir/catalog-api/internal/events"
	"github.com/poskasir/catalog-api/internal/hash"
	"github.com/poskasir/catalog-api/internal/logging"
	"github.com/poskasir/catalog-api/internal/models"
	"github.com/poskasir/catalog-api/internal/repo"
	"github.com/poskasir/catalog-api/internal/tokens"
	"github.com/poskasir/catalog-api/internal/transport"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	Repo      *repo.GormRepo
	Events    *events.Producer
	JWTSecret []byte
}

func (s *UserService) publish(ctx context.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(ctx, events.TopicUsers, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", events.TopicUsers, "error", err)
	}
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrValidation
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  pwHash,
	}
	if err := s.Repo.CreateUserBootstrap(ctx, &user); err != nil {
		return nil, err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
		"role":   user.Role,
	})
	return &user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*transport.LoginResult, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &transport.LoginResult{
		Token: token,
		User: transport.LoginUser{
			FullName: user.FirstName + " " + user.LastName,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]transport.UserRow, error) {
	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]transport.UserRow, len(users))
	for i, u := range users {
		rows[i] = transport.UserRow{
			ID:       u.ID,
			FullName: u.FirstName + " " + u.LastName,
			Email:    u.Email,
			Role:     u.Role,
		}
	}
	return rows, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, req transport.UpdateProfileRequest) error {
	return s.Repo.UpdateUserProfile(ctx, id, req.FirstName, req.LastName, req.Email)
}

func (s *UserService) UpdatePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(user.Password, oldPassword) {
		return ErrInvalidCredentials
	}
	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdateUserPassword(ctx, id, pwHash)
}

func (s *UserService) UpdateRole(ctx context.Context, id, role string) error {
	if role != models.RoleSuperadmin && role != models.RoleCustomer {
		return ErrValidation
	}
	if err := s.Repo.UpdateUserRole(ctx, id, role); err != nil {
		return err
	}
	s.publish(ctx, id, map[string]any{
		"type":   "user_role_changed",
		"userID": id,
		"role":   role,
	})
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, map[string]any{
		"type":   "user_deleted",
		"userID": id,
	})
	return nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
