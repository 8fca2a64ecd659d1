package service

import (
	"context"
	"errors"
	"strings"

	"borrowbee/internal/models"
	"borrowbee/internal/repository"
)

var ErrNameRequired = errors.New("имя обязательно")

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile splits the full name on the first space into first and last
// name, matching the profile form of the dashboard.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	nameParts := strings.SplitN(name, " ", 2)
	user.FirstName = nameParts[0]
	user.LastName = ""
	if len(nameParts) > 1 {
		user.LastName = nameParts[1]
	}
	user.Bio = strings.TrimSpace(req.Bio)
	user.Location = strings.TrimSpace(req.Location)

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
