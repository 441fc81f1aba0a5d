package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 管理端的员工账号管理
type UserService struct {
	profileRepo  *repository.ProfileRepository
	tenantRepo   *repository.TenantRepository
	auditService *AuditService
}

func NewUserService(
	profileRepo *repository.ProfileRepository,
	tenantRepo *repository.TenantRepository,
	auditService *AuditService,
) *UserService {
	return &UserService{profileRepo: profileRepo, tenantRepo: tenantRepo, auditService: auditService}
}

type CreateEmployeeRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// List 租户下全部成员档案
func (s *UserService) List(tenantID string) ([]model.Profile, error) {
	return s.profileRepo.ListByTenant(tenantID)
}

// Search 按姓名或邮箱模糊查找租户成员
func (s *UserService) Search(tenantID, query string) ([]model.Profile, error) {
	if query == "" {
		return []model.Profile{}, nil
	}
	return s.profileRepo.SearchByTenant(tenantID, query)
}

// Create 管理员创建员工账号并加入租户
func (s *UserService) Create(actor *util.Claims, tenantID string, req *CreateEmployeeRequest) (*model.Profile, error) {
	if _, err := s.profileRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
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
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}

	membership := &model.TenantMembership{
		TenantID:  tenantID,
		ProfileID: profile.ID,
		Role:      model.Employee,
	}
	if err := s.tenantRepo.CreateMembership(membership); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditUserCreate, "profile", profile.ID, map[string]interface{}{
		"email": profile.Email,
	})
	return profile, nil
}

// Deactivate 停用账号，登录时拒绝，不删数据
func (s *UserService) Deactivate(actor *util.Claims, tenantID, profileID string) error {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	if err := s.profileRepo.Deactivate(profileID); err != nil {
		return err
	}

	s.auditService.Log(actor, tenantID, model.AuditUserDeactivate, "profile", profileID, map[string]interface{}{
		"email": profile.Email,
	})
	return nil
}
