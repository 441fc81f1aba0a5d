package service

import (
	"errors"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	ProfileRepo *repository.ProfileRepository
	Cfg         *config.Config
}

func NewAuthService(profileRepo *repository.ProfileRepository, cfg *config.Config) *AuthService {
	return &AuthService{ProfileRepo: profileRepo, Cfg: cfg}
}

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Profile *model.Profile `json:"profile"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.Profile, error) {
	_, err := s.ProfileRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.Employee,
		Active:   true,
	}

	if err := s.ProfileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	profile, err := s.ProfileRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if !profile.Active {
		return nil, util.ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrUserNotFound
	}

	token, err := util.GenerateJWT(profile, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	// 登录时间非关键路径，失败忽略
	s.ProfileRepo.UpdateLastLogin(profile.ID)

	return &LoginResponse{Token: token, Profile: profile}, nil
}
